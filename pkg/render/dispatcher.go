package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/request"
)

const defaultEmailRenderer = "email"

// DispatcherOption customises a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithWorker injects the background rendering channel used for fax and letter
// submissions.
func WithWorker(worker Worker) DispatcherOption {
	return func(d *Dispatcher) {
		d.worker = worker
	}
}

// WithRegistry injects the registry of synchronous renderers.
func WithRegistry(registry *Registry) DispatcherOption {
	return func(d *Dispatcher) {
		if registry != nil {
			d.registry = registry
		}
	}
}

// WithEmailRenderer names the registered renderer used for the email medium.
func WithEmailRenderer(name string) DispatcherOption {
	return func(d *Dispatcher) {
		if name != "" {
			d.emailRenderer = name
		}
	}
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(logger zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// OnArtifact registers the callback invoked when a submission completes with
// a current (non-stale) artifact.
func OnArtifact(fn func(Artifact)) DispatcherOption {
	return func(d *Dispatcher) {
		d.onArtifact = fn
	}
}

// OnError registers the callback invoked when the background renderer reports
// a failure for the current generation.
func OnError(fn func(error)) DispatcherOption {
	return func(d *Dispatcher) {
		d.onError = fn
	}
}

// Submission describes one generation-tagged render request.
type Submission struct {
	Generation    uint64
	Letter        letter.Letter
	Medium        request.TransportMedium
	Type          request.Type
	RecipientSlug string
}

// Dispatcher routes assembled letters to their output encoder. Fax and letter
// submissions travel through the background Worker and complete
// asynchronously; email submissions encode synchronously through the renderer
// registry. Every submission carries a generation; a reply whose generation no
// longer matches the latest submission is discarded silently, so a slow
// background render can never overwrite output belonging to a newer edit.
//
// The dispatcher imposes no timeout: a worker that never replies leaves the
// pending flag set indefinitely.
type Dispatcher struct {
	worker        Worker
	registry      *Registry
	emailRenderer string
	logger        zerolog.Logger
	onArtifact    func(Artifact)
	onError       func(error)

	mu       sync.Mutex
	latest   uint64
	filename string
	pending  bool
	artifact *Artifact
}

// NewDispatcher builds a Dispatcher. A registry is created on demand when the
// host does not supply one.
func NewDispatcher(options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:      NewRegistry(),
		emailRenderer: defaultEmailRenderer,
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// Registry exposes the renderer registry for host wiring.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Submit hands a letter to the encoder selected by the transport medium. Any
// previously available artifact is cleared immediately; for background media
// the dispatcher stays pending until the matching reply arrives.
func (d *Dispatcher) Submit(ctx context.Context, sub Submission) error {
	if ctx == nil {
		return fmt.Errorf("render: context is required")
	}

	filename := letter.Filename(sub.RecipientSlug, sub.Letter.RecipientAddress, sub.Type, sub.Letter.Reference)

	d.mu.Lock()
	d.latest = sub.Generation
	d.filename = filename
	d.pending = true
	d.artifact = nil
	d.mu.Unlock()

	switch sub.Medium {
	case request.MediumFax, request.MediumLetter:
		return d.submitBackground(ctx, sub, filename)
	case request.MediumEmail:
		return d.submitEmail(ctx, sub)
	default:
		d.clearPending(sub.Generation)
		return fmt.Errorf("render: unknown transport medium %q", sub.Medium)
	}
}

func (d *Dispatcher) submitBackground(ctx context.Context, sub Submission, filename string) error {
	if d.worker == nil {
		d.clearPending(sub.Generation)
		return fmt.Errorf("render: no background worker configured")
	}

	job := Job{Generation: sub.Generation, Letter: sub.Letter, Filename: filename}
	if err := d.worker.Submit(ctx, job, d.handleReply); err != nil {
		d.clearPending(sub.Generation)
		return fmt.Errorf("render: submit job: %w", err)
	}
	return nil
}

func (d *Dispatcher) submitEmail(ctx context.Context, sub Submission) error {
	renderer, err := d.registry.Get(d.emailRenderer)
	if err != nil {
		d.clearPending(sub.Generation)
		return err
	}

	data, err := renderer.Render(ctx, sub.Letter, Options{})
	if err != nil {
		d.clearPending(sub.Generation)
		return fmt.Errorf("render: encode email: %w", err)
	}

	d.handleReply(Reply{
		Generation: sub.Generation,
		Artifact: Artifact{
			Filename:    d.emailFilename(sub),
			ContentType: renderer.ContentType(),
			Data:        data,
		},
	})
	return nil
}

func (d *Dispatcher) emailFilename(sub Submission) string {
	name := letter.Filename(sub.RecipientSlug, sub.Letter.RecipientAddress, sub.Type, sub.Letter.Reference)
	// Email artifacts are HTML fragments, not PDFs.
	return name[:len(name)-len(".pdf")] + ".html"
}

// handleReply applies a worker reply to the visible state unless it has been
// superseded by a newer submission.
func (d *Dispatcher) handleReply(reply Reply) {
	d.mu.Lock()
	if reply.Generation != d.latest {
		d.mu.Unlock()
		d.logger.Debug().
			Uint64("generation", reply.Generation).
			Uint64("latest", d.latest).
			Msg("discarding stale render reply")
		return
	}
	d.pending = false

	if reply.Err != nil {
		d.mu.Unlock()
		d.logger.Error().Err(reply.Err).Uint64("generation", reply.Generation).Msg("background render failed")
		if d.onError != nil {
			d.onError(reply.Err)
		}
		return
	}

	artifact := reply.Artifact
	if artifact.Filename == "" {
		artifact.Filename = d.filename
	}
	d.artifact = &artifact
	d.mu.Unlock()

	if d.onArtifact != nil {
		d.onArtifact(artifact)
	}
}

func (d *Dispatcher) clearPending(generation uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest == generation {
		d.pending = false
	}
}

// Pending reports whether a background render for the latest generation is
// still outstanding.
func (d *Dispatcher) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Artifact returns the artifact for the latest completed generation, if any.
func (d *Dispatcher) Artifact() (Artifact, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.artifact == nil {
		return Artifact{}, false
	}
	return *d.artifact, true
}
