// Package lifecycle owns the canonical request record and coordinates the
// merge → template → assemble → dispatch pipeline. All mutation happens
// through the enumerated transitions on a single control flow; asynchronous
// results (template fetches, background renders) are reconciled through
// generation tags rather than locks.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-lettergen/pkg/history"
	"github.com/goliatone/go-lettergen/pkg/i18n"
	"github.com/goliatone/go-lettergen/pkg/identity"
	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/render"
	"github.com/goliatone/go-lettergen/pkg/request"
	"github.com/goliatone/go-lettergen/pkg/template"
)

// Scope names a consent-gated capability. Hosts decide what the user agreed
// to; the lifecycle only asks.
type Scope string

const (
	// ScopeSaveIdentity gates reads/writes of saved identity data.
	ScopeSaveIdentity Scope = "save-identity"
	// ScopeSaveRequests gates the request history store.
	ScopeSaveRequests Scope = "save-requests"
)

// Option customises a Lifecycle.
type Option func(*Lifecycle)

// WithTemplateStore injects the template source. Required.
func WithTemplateStore(store template.Store) Option {
	return func(l *Lifecycle) {
		l.templates = store
	}
}

// WithDispatcher injects the render dispatcher. Required for output; without
// one the lifecycle still maintains state but never renders.
func WithDispatcher(d *render.Dispatcher) Option {
	return func(l *Lifecycle) {
		l.dispatcher = d
	}
}

// WithIdentityStore injects the saved identity data boundary.
func WithIdentityStore(store identity.Store) Option {
	return func(l *Lifecycle) {
		if store != nil {
			l.identities = store
		}
	}
}

// WithHistoryStore injects the request history boundary.
func WithHistoryStore(store history.Store) Option {
	return func(l *Lifecycle) {
		l.history = store
	}
}

// WithCatalog injects the locale catalog.
func WithCatalog(cat *i18n.Catalog) Option {
	return func(l *Lifecycle) {
		if cat != nil {
			l.catalog = cat
		}
	}
}

// WithLocale sets the session locale used for fresh records.
func WithLocale(locale string) Option {
	return func(l *Lifecycle) {
		l.locale = locale
	}
}

// WithConsent injects the host's consent check. Denied scopes make the
// corresponding store behave as absent. The default denies nothing.
func WithConsent(fn func(Scope) bool) Option {
	return func(l *Lifecycle) {
		if fn != nil {
			l.consent = fn
		}
	}
}

// WithAlwaysFill prefills fresh records from the identity store's fixed
// fields, mirroring the "always fill my data" host setting.
func WithAlwaysFill(enabled bool) Option {
	return func(l *Lifecycle) {
		l.alwaysFill = enabled
	}
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Lifecycle) {
		l.logger = logger
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(l *Lifecycle) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// OnFailure registers the host callback for user-visible failures (template
// fetch errors, store write errors, render failures). Failures never corrupt
// the request record.
func OnFailure(fn func(error)) Option {
	return func(l *Lifecycle) {
		l.onFailure = fn
	}
}

// Lifecycle is the single owner of one request record.
type Lifecycle struct {
	templates  template.Store
	dispatcher *render.Dispatcher
	identities identity.Store
	history    history.Store
	catalog    *i18n.Catalog
	locale     string
	consent    func(Scope) bool
	alwaysFill bool
	logger     zerolog.Logger
	clock      func() time.Time
	onFailure  func(error)

	record           *request.Record
	recipient        *request.Recipient
	templateText     string
	templateOverride string
	responseType     string
	generation       uint64
	done             bool
}

// New constructs a Lifecycle with a fresh record. No I/O happens here; call
// Reset to prefill saved identity data and fetch the initial template.
func New(options ...Option) (*Lifecycle, error) {
	l := &Lifecycle{
		identities: identity.Nop{},
		locale:     "en",
		consent:    func(Scope) bool { return true },
		logger:     zerolog.Nop(),
		clock:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}

	if l.templates == nil {
		return nil, errors.New("lifecycle: template store is required")
	}
	if l.catalog == nil {
		cat, err := i18n.New()
		if err != nil {
			return nil, fmt.Errorf("lifecycle: default catalog: %w", err)
		}
		l.catalog = cat
	}
	l.locale = l.catalog.Resolve(l.locale)
	l.record = request.New(l.clock(), l.locale, l.catalog)
	return l, nil
}

// Record returns a snapshot of the current request record. Callers never see
// (or mutate) the lifecycle's own copy.
func (l *Lifecycle) Record() *request.Record {
	return l.record.Clone()
}

// Recipient returns the currently attached recipient, if any.
func (l *Lifecycle) Recipient() (request.Recipient, bool) {
	if l.recipient == nil {
		return request.Recipient{}, false
	}
	return *l.recipient, true
}

// Generation reports the current edit generation.
func (l *Lifecycle) Generation() uint64 {
	return l.generation
}

// ResponseType reports the response template in use when the record is a
// custom response to an earlier request.
func (l *Lifecycle) ResponseType() string {
	return l.responseType
}

// Done reports whether the request was finalized.
func (l *Lifecycle) Done() bool {
	return l.done
}

// TemplateText exposes the currently fetched template, mainly for hosts that
// preview it.
func (l *Lifecycle) TemplateText() string {
	return l.templateText
}

// Letter assembles the current document descriptor without dispatching it.
func (l *Lifecycle) Letter() letter.Letter {
	return letter.Assemble(l.record, l.templateText, l.catalog)
}

func (l *Lifecycle) allowed(scope Scope) bool {
	return l.consent(scope)
}

func (l *Lifecycle) identityStore() identity.Store {
	if !l.allowed(ScopeSaveIdentity) {
		return identity.Nop{}
	}
	return l.identities
}

// report surfaces a failure to the host without touching record state.
func (l *Lifecycle) report(err error) {
	if err == nil {
		return
	}
	l.logger.Error().Err(err).Msg("lifecycle failure")
	if l.onFailure != nil {
		l.onFailure(err)
	}
}

// bump invalidates any in-flight pipeline result for the previous edit state.
func (l *Lifecycle) bump() uint64 {
	l.generation++
	return l.generation
}

// templateID resolves the template selection for the current record.
func (l *Lifecycle) templateID() string {
	if l.templateOverride != "" {
		return l.templateOverride
	}
	if l.recipient != nil {
		return l.recipient.TemplateFor(l.record.Type)
	}
	return string(l.record.Type) + "-default"
}

// fetchTemplate pulls the current template selection and reports whether the
// template state is good to render from. On failure the previous text is kept
// and the failure is surfaced; rendering does not advance until a valid
// template arrives.
func (l *Lifecycle) fetchTemplate(ctx context.Context) bool {
	if l.record.Type == request.TypeCustom {
		return true
	}
	text, err := l.templates.Fetch(ctx, l.record.Language, l.templateID())
	if err != nil {
		l.report(fmt.Errorf("lifecycle: fetch template %q: %w", l.templateID(), err))
		return false
	}
	l.templateText = text
	return true
}

// refresh assembles and dispatches the current document. Standard requests
// without template text stay undispatched; everything else flows through the
// dispatcher tagged with the current generation.
func (l *Lifecycle) refresh(ctx context.Context) {
	if l.dispatcher == nil {
		return
	}
	if l.record.Type != request.TypeCustom && l.templateText == "" {
		return
	}

	doc := letter.Assemble(l.record, l.templateText, l.catalog)

	var slug string
	if l.recipient != nil {
		slug = l.recipient.Slug
	}
	err := l.dispatcher.Submit(ctx, render.Submission{
		Generation:    l.generation,
		Letter:        doc,
		Medium:        l.record.TransportMedium,
		Type:          l.record.Type,
		RecipientSlug: slug,
	})
	if err != nil {
		l.report(err)
	}
}
