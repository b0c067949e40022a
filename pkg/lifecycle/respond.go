package lifecycle

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-lettergen/pkg/request"
	"github.com/goliatone/go-lettergen/pkg/template"
)

// Well-known response templates. Any template id works; these two get the
// documented extra behavior.
const (
	// ResponseAdmonition reminds a recipient of an unanswered request. It is
	// re-sent the same way the original went out.
	ResponseAdmonition = "admonition"
	// ResponseComplaint goes to a supervisory authority, not the original
	// recipient, so no recipient state is restored.
	ResponseComplaint = "complaint"
)

// ComposeResponse turns the lifecycle into a custom follow-up letter for a
// previously finalized request. The response template is fetched and its
// tokens are filled from the stored history entry; the new letter reuses the
// original reference so the recipient can correlate the thread. Admonitions
// additionally restore the original transport medium and recipient address.
// On any failure the current record is left untouched.
func (l *Lifecycle) ComposeResponse(ctx context.Context, historyKey, responseType string) error {
	if l.history == nil || !l.allowed(ScopeSaveRequests) {
		return fmt.Errorf("lifecycle: compose response: no request history available")
	}

	entry, err := l.history.Get(ctx, historyKey)
	if err != nil {
		err = fmt.Errorf("lifecycle: compose response: load %q: %w", historyKey, err)
		l.report(err)
		return err
	}

	text, err := l.templates.Fetch(ctx, l.record.Language, responseType)
	if err != nil {
		err = fmt.Errorf("lifecycle: compose response: fetch template %q: %w", responseType, err)
		l.report(err)
		return err
	}

	content := template.Substitute(text, nil, map[string]string{
		template.TokenRequestArticle:          strconv.Itoa(entry.Type.Article()),
		template.TokenRequestDate:             entry.Date,
		template.TokenRequestRecipientAddress: entry.RecipientAddress,
	})

	l.record.Type = request.TypeCustom
	l.record.Reference = entry.Reference
	l.record.CustomData.Content = content
	l.responseType = responseType
	l.templateText = ""
	l.templateOverride = ""

	if responseType == ResponseAdmonition {
		l.record.TransportMedium = entry.TransportMedium
		l.record.RecipientAddress = entry.RecipientAddress
	}

	l.bump()
	l.refresh(ctx)
	return nil
}
