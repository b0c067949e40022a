// Package plaintext encodes a letter as plain text, mainly for hosts that
// compose their own mail envelope and only need the body.
package plaintext

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/render"
)

// Renderer implements render.Renderer with a text/plain projection.
type Renderer struct{}

// New constructs the plain-text renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name implements render.Renderer.
func (*Renderer) Name() string { return "text" }

// ContentType implements render.Renderer.
func (*Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render emits the information block followed by the letter body and
// signature.
func (*Renderer) Render(ctx context.Context, doc letter.Letter, _ render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("plaintext: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	if doc.InformationBlock != "" {
		b.WriteString(doc.InformationBlock)
		b.WriteString("\n\n")
	}
	b.WriteString(doc.EmailString())
	return []byte(b.String()), nil
}
