// Package email encodes an assembled letter as an HTML fragment suitable for
// pasting into a mail client or serving as a locally-addressable blob. Unlike
// the fax/letter path there is no background worker: encoding happens
// synchronously at submission time.
package email

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/render"
	"github.com/goliatone/go-lettergen/pkg/render/template"
	"github.com/goliatone/go-lettergen/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const bodyTemplate = "email_body.html"

// Option configures the email renderer.
type Option func(*Renderer)

// WithEngine swaps the template engine used for the HTML wrapper.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTheme injects resolved theme tokens; CSS variables end up on the
// fragment's :root.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithPolicy overrides the sanitation policy applied to letter content before
// it is embedded in markup. The default strict policy strips all markup from
// user-supplied text.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// Renderer implements render.Renderer for the email transport medium.
type Renderer struct {
	engine template.TemplateRenderer
	policy *bluemonday.Policy
	theme  *theme.RendererConfig
}

// New constructs the email renderer with the embedded wrapper template and a
// strict sanitation policy.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{policy: bluemonday.StrictPolicy()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.engine == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("email: embedded templates: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(sub), gotemplate.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("email: build template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return "email" }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render wraps the letter's email text in an HTML document. Letter content is
// sanitized first so a template or user input can never inject markup into
// the fragment.
func (r *Renderer) Render(ctx context.Context, doc letter.Letter, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("email: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	language := doc.Language
	if opts.Locale != "" {
		language = opts.Locale
	}

	data := map[string]any{
		"body":      r.policy.Sanitize(doc.EmailString()),
		"language":  language,
		"theme_css": cssVarsStyle(r.theme),
	}

	out, err := r.engine.RenderTemplate(bodyTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("email: render fragment: %w", err)
	}
	return []byte(out), nil
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
