package render

import (
	"context"

	"github.com/goliatone/go-lettergen/pkg/letter"
)

// Renderer converts an assembled letter into a byte representation (HTML
// email fragment, plain text, etc.). Renderers are synchronous; long-running
// output encoders such as the PDF channel implement Worker instead.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc letter.Letter, opts Options) ([]byte, error)
}

// Options carry per-submission hints renderers may use.
type Options struct {
	// Locale overrides the letter's language for renderer-owned chrome
	// (labels, wrapper markup). Empty uses the letter's language.
	Locale string
}

// Job is one generation-tagged unit of background rendering work.
type Job struct {
	Generation uint64
	Letter     letter.Letter
	Filename   string
}

// Reply is the background renderer's answer to a Job. Generation echoes the
// job so the dispatcher can discard replies that no longer match the current
// edit state.
type Reply struct {
	Generation uint64
	Artifact   Artifact
	Err        error
}

// Artifact is an addressable rendered output ready for download or dispatch.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Worker is the opaque background rendering channel. Submit must not block on
// the render itself; completion is reported through reply, possibly from
// another goroutine and possibly out of submission order. Workers are never
// asked to cancel in-flight jobs; superseded results are discarded on arrival.
type Worker interface {
	Submit(ctx context.Context, job Job, reply func(Reply)) error
}

// WorkerFunc adapts a function to the Worker interface.
type WorkerFunc func(ctx context.Context, job Job, reply func(Reply)) error

// Submit implements Worker.
func (f WorkerFunc) Submit(ctx context.Context, job Job, reply func(Reply)) error {
	return f(ctx, job, reply)
}
