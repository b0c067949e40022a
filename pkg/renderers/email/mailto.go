package email

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-lettergen/pkg/i18n"
	"github.com/goliatone/go-lettergen/pkg/letter"
)

// MailtoLink composes a mailto: URL for the letter, carrying the subject with
// the request reference and the plain-text body. The recipient address may be
// empty when the host does not know the recipient's mailbox.
func MailtoLink(doc letter.Letter, to string, cat *i18n.Catalog) string {
	referenceLabel := "My reference"
	if cat != nil {
		referenceLabel = cat.T(doc.Language, "my-reference")
	}

	subject := doc.Subject + " (" + referenceLabel + ": " + doc.Reference + ")"

	return "mailto:" + strings.TrimSpace(to) +
		"?subject=" + queryEscape(subject) +
		"&body=" + queryEscape(doc.EmailString())
}

// queryEscape percent-encodes for mailto links, where "+" is not understood
// as a space.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
