package lettergen

import (
	"context"
	"fmt"

	"github.com/goliatone/go-lettergen/internal/templatestore"
	"github.com/goliatone/go-lettergen/pkg/i18n"
	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/lifecycle"
	"github.com/goliatone/go-lettergen/pkg/render"
	"github.com/goliatone/go-lettergen/pkg/renderers/plaintext"
	"github.com/goliatone/go-lettergen/pkg/request"
	"github.com/goliatone/go-lettergen/pkg/template"
)

// Record is the canonical state of one in-progress request; alias exported
// via the root package for convenience.
type Record = request.Record

// Recipient describes the organization a request is addressed to.
type Recipient = request.Recipient

// IdentityField is one piece of the requester's personal data.
type IdentityField = request.IdentityField

// Letter is the immutable projection a renderer consumes.
type Letter = letter.Letter

// Artifact is a rendered output ready for download or dispatch.
type Artifact = render.Artifact

// NewLifecycle exposes the lifecycle constructor from the top-level module.
func NewLifecycle(options ...lifecycle.Option) (*lifecycle.Lifecycle, error) {
	return lifecycle.New(options...)
}

// NewEmbeddedTemplateStore returns a template store serving the request
// templates compiled into the module.
func NewEmbeddedTemplateStore(defaultLocale string) (template.Store, error) {
	return templatestore.NewFS(nil, defaultLocale)
}

// NewHTTPTemplateStore returns a template store fetching templates from a
// remote base URL, with locale fallback.
func NewHTTPTemplateStore(baseURL, defaultLocale string, options ...templatestore.HTTPOption) (template.Store, error) {
	return templatestore.NewHTTP(baseURL, defaultLocale, options...)
}

// GenerateText is the simplest entry point: it assembles a request of the
// given type to the recipient using the embedded templates and returns the
// plain-text letter. Identity fields come from the caller; nothing is
// persisted or dispatched.
func GenerateText(ctx context.Context, typ request.Type, rec Recipient, fields []IdentityField, locale string) ([]byte, error) {
	cat, err := i18n.New()
	if err != nil {
		return nil, err
	}
	store, err := NewEmbeddedTemplateStore(cat.DefaultLocale())
	if err != nil {
		return nil, err
	}

	var failure error
	lc, err := lifecycle.New(
		lifecycle.WithTemplateStore(store),
		lifecycle.WithCatalog(cat),
		lifecycle.WithLocale(locale),
		lifecycle.OnFailure(func(err error) {
			failure = err
		}),
	)
	if err != nil {
		return nil, err
	}

	lc.RecipientSelected(ctx, rec)
	if typ != request.TypeAccess {
		lc.TypeChanged(ctx, typ)
	}
	if failure != nil {
		return nil, failure
	}
	if typ != request.TypeCustom && lc.TemplateText() == "" {
		return nil, fmt.Errorf("lettergen: no template for %q requests in locale %q", typ, locale)
	}
	for _, f := range fields {
		lc.FieldEdited(ctx, f)
	}

	return plaintext.New().Render(ctx, lc.Letter(), render.Options{})
}
