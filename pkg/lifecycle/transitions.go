package lifecycle

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-lettergen/pkg/history"
	"github.com/goliatone/go-lettergen/pkg/request"
)

// Apply runs an arbitrary edit against the record and re-runs the pipeline.
// It is the generic "field edited" transition; typed helpers below delegate
// to it.
func (l *Lifecycle) Apply(ctx context.Context, mutate func(*request.Record)) {
	if mutate != nil {
		mutate(l.record)
	}
	l.bump()
	l.refresh(ctx)
}

// FieldEdited replaces (or appends) one identity field and re-renders.
func (l *Lifecycle) FieldEdited(ctx context.Context, field request.IdentityField) {
	l.Apply(ctx, func(r *request.Record) {
		r.SetField(field)
	})
}

// SignatureChanged updates the signature and re-renders.
func (l *Lifecycle) SignatureChanged(ctx context.Context, sig request.Signature) {
	l.Apply(ctx, func(r *request.Record) {
		r.Signature = sig
	})
}

// TypeChanged switches the request type, refetches the matching template and
// re-renders. Switching to custom keeps the template machinery idle; the
// letter is built from CustomData instead.
func (l *Lifecycle) TypeChanged(ctx context.Context, t request.Type) {
	if l.record.Type == t {
		return
	}
	l.record.Type = t
	l.templateOverride = ""
	if t != request.TypeCustom {
		l.responseType = ""
		l.record.CustomData = request.CustomData{}
	}
	l.bump()
	if l.fetchTemplate(ctx) {
		l.refresh(ctx)
	}
}

// TransportMediumChanged switches the outgoing medium. The recipient address
// gains the localized fax routing line when switching to fax and loses it
// when switching away; both directions are idempotent. Data portability only
// makes sense for machine-readable delivery and follows the email medium.
func (l *Lifecycle) TransportMediumChanged(ctx context.Context, medium request.TransportMedium) {
	l.record.TransportMedium = medium
	l.record.DataPortability = medium == request.MediumEmail

	fax := ""
	if l.recipient != nil {
		fax = strings.TrimSpace(l.recipient.Fax)
	}
	byFax := l.catalog.T(l.record.Language, "by-fax")
	switch medium {
	case request.MediumFax:
		l.record.RecipientAddress = addFaxLine(l.record.RecipientAddress, byFax, fax)
	default:
		l.record.RecipientAddress = stripFaxLine(l.record.RecipientAddress, byFax)
	}

	l.bump()
	l.refresh(ctx)
}

// RecipientSelected attaches a recipient: its language and suggested medium
// take effect, its required fields are merged into the user's current fields
// and the matching template is fetched. Fields the recipient does not ask for
// are dropped; the user's values for the fields that remain are preserved.
func (l *Lifecycle) RecipientSelected(ctx context.Context, rec request.Recipient) {
	l.recipient = &rec
	l.templateOverride = ""

	l.record.Language = l.catalog.Resolve(rec.RequestLanguage)
	l.record.RecipientRuns = append([]string(nil), rec.Runs...)

	medium := rec.SuggestedTransportMedium
	if medium == "" {
		if strings.TrimSpace(rec.Fax) != "" {
			medium = request.MediumFax
		} else {
			medium = request.MediumLetter
		}
	}
	l.record.TransportMedium = medium
	l.record.DataPortability = medium == request.MediumEmail

	address := rec.Name
	if strings.TrimSpace(rec.Address) != "" {
		address += "\n" + rec.Address
	}
	if medium == request.MediumFax {
		address = addFaxLine(address, l.catalog.T(l.record.Language, "by-fax"), strings.TrimSpace(rec.Fax))
	}
	l.record.RecipientAddress = address

	required := rec.RequiredFields
	if len(required) == 0 {
		required = request.DefaultFields(l.record.Language, l.catalog)
	}
	l.record.IdentityFields = request.MergeFields(l.record.IdentityFields, required, request.MergeOptions{
		PreferRequiredOrder: true,
		DropUnrequired:      true,
	})

	l.bump()
	if l.fetchTemplate(ctx) {
		l.refresh(ctx)
	}
}

// RecipientRemoved detaches the recipient. Recipient-derived record state is
// cleared while the user's own field values survive; the default template for
// the session locale takes over.
func (l *Lifecycle) RecipientRemoved(ctx context.Context) {
	l.recipient = nil
	l.templateOverride = ""
	l.record.RecipientAddress = ""
	l.record.RecipientRuns = nil
	l.record.Language = l.locale

	l.bump()
	if l.fetchTemplate(ctx) {
		l.refresh(ctx)
	}
}

// TemplateOverridden pins a specific template id instead of the type default.
// For custom records the fetched text becomes the letter content and the id
// is remembered as the response type.
func (l *Lifecycle) TemplateOverridden(ctx context.Context, templateID string) {
	if l.record.Type == request.TypeCustom {
		text, err := l.templates.Fetch(ctx, l.record.Language, templateID)
		if err != nil {
			l.report(fmt.Errorf("lifecycle: fetch template %q: %w", templateID, err))
			return
		}
		l.record.CustomData.Content = text
		l.responseType = templateID
		l.bump()
		l.refresh(ctx)
		return
	}

	l.templateOverride = templateID
	l.bump()
	if l.fetchTemplate(ctx) {
		l.refresh(ctx)
	}
}

// Finalize marks the request as sent: identity fields and the signature are
// persisted (when the user consented to that) and a history entry is written
// so responses can reference this request later. Store failures are reported
// and do not abort the flow.
func (l *Lifecycle) Finalize(ctx context.Context) {
	if err := l.record.Validate(); err != nil {
		l.logger.Warn().Err(err).Msg("finalizing request with validation gaps")
	}

	ids := l.identityStore()
	if err := ids.StoreArray(ctx, request.CloneFields(l.record.IdentityFields)); err != nil {
		l.report(fmt.Errorf("lifecycle: store identity fields: %w", err))
	}
	if l.record.Signature.Value != "" {
		if err := ids.StoreSignature(ctx, l.record.Signature); err != nil {
			l.report(fmt.Errorf("lifecycle: store signature: %w", err))
		}
	}

	if l.history != nil && l.allowed(ScopeSaveRequests) {
		var slug string
		if l.recipient != nil {
			slug = l.recipient.Slug
		}
		entry := history.Entry{
			Reference:        l.record.Reference,
			Date:             l.record.Date,
			Type:             l.record.Type,
			ResponseType:     l.responseType,
			RecipientSlug:    slug,
			RecipientAddress: l.record.RecipientAddress,
			TransportMedium:  l.record.TransportMedium,
		}
		if err := l.history.Put(ctx, entry); err != nil {
			l.report(fmt.Errorf("lifecycle: store history entry: %w", err))
		}
	}

	l.done = true
}

// Reset replaces the record wholesale for a fresh request: new reference,
// today's date, the session locale's defaults, and — when the host enabled
// always-fill and the user consented — values prefilled from saved identity
// data. The generation counter keeps counting across resets: an in-flight
// render for the previous request can never carry a number the new request
// will reuse, so its reply is guaranteed stale.
func (l *Lifecycle) Reset(ctx context.Context) {
	l.record = request.New(l.clock(), l.locale, l.catalog)
	l.recipient = nil
	l.templateText = ""
	l.templateOverride = ""
	l.responseType = ""
	l.done = false

	if l.alwaysFill {
		l.prefill(ctx)
	}

	l.bump()
	if l.fetchTemplate(ctx) {
		l.refresh(ctx)
	}
}

// prefill copies saved identity data into the fresh record. Saved values only
// fill gaps; they never displace anything (a fresh record has no edits yet,
// so in practice everything fills).
func (l *Lifecycle) prefill(ctx context.Context) {
	ids := l.identityStore()

	saved, err := ids.GetAll(ctx, true)
	if err != nil {
		l.report(fmt.Errorf("lifecycle: read saved identity fields: %w", err))
		return
	}
	if len(saved) > 0 {
		l.record.IdentityFields = request.MergeFields(l.record.IdentityFields, saved, request.MergeOptions{
			OverwriteValues:   true,
			OverwriteOptional: false,
		})
	}

	sig, err := ids.GetSignature(ctx)
	if err != nil {
		l.report(fmt.Errorf("lifecycle: read saved signature: %w", err))
		return
	}
	if sig != nil {
		l.record.Signature = *sig
	}
}

// faxLinePattern matches an appended routing line: the localized prefix
// followed by a fax number. Matching the full line (not just the prefix)
// keeps an address that merely mentions the phrase from being mistaken for
// one that already carries the routing line.
func faxLinePattern(byFax string) *regexp.Regexp {
	return regexp.MustCompile(`(?:\r\n|\r|\n)?` + regexp.QuoteMeta(byFax) + `[+0-9][0-9 ()/-]*`)
}

// addFaxLine appends the localized "by fax" routing line unless the address
// already carries one, keeping repeated medium toggles idempotent.
func addFaxLine(address, byFax, fax string) string {
	if fax == "" || byFax == "" {
		return address
	}
	if faxLinePattern(byFax).MatchString(address) {
		return address
	}
	return address + "\n" + byFax + fax
}

// stripFaxLine removes a previously appended routing line, if present.
func stripFaxLine(address, byFax string) string {
	if byFax == "" {
		return address
	}
	return faxLinePattern(byFax).ReplaceAllString(address, "")
}
