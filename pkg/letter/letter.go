package letter

import (
	"strings"

	"github.com/goliatone/go-lettergen/pkg/request"
)

// Letter is the fully-resolved, renderer-agnostic representation of one
// request document. It is immutable once assembled: edits to the underlying
// record produce a new Letter, never mutate an existing one.
type Letter struct {
	Subject          string
	Content          string
	RecipientAddress string
	SenderOneLine    string
	InformationBlock string
	ReferenceBarcode string
	Signature        request.Signature
	Language         string
	Reference        string
}

// FormatAddress flattens a structured address into a single line, prefixing
// the owner's name when given. Components are joined with sep (the letter
// head uses " • ").
func FormatAddress(addr request.Address, sep, name string) string {
	parts := make([]string, 0, 5)
	if strings.TrimSpace(name) != "" {
		parts = append(parts, strings.TrimSpace(name))
	}
	parts = append(parts, addr.Lines()...)
	return strings.Join(parts, sep)
}

// EmailString renders the letter as the plain-text body of an email. The
// information block travels in the mail header (subject/reference), so only
// content and signature are emitted.
func (l Letter) EmailString() string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(l.Content, "\n"))

	if sig := l.signatureText(); sig != "" {
		b.WriteString("\n\n")
		b.WriteString(sig)
	}
	b.WriteString("\n")
	return b.String()
}

func (l Letter) signatureText() string {
	switch l.Signature.Kind {
	case "", "image":
		return strings.TrimSpace(l.Signature.Name)
	default:
		value := strings.TrimSpace(l.Signature.Value)
		name := strings.TrimSpace(l.Signature.Name)
		if value != "" && name != "" && !strings.EqualFold(value, name) {
			return value + "\n" + name
		}
		if value != "" {
			return value
		}
		return name
	}
}
