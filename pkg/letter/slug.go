package letter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-lettergen/pkg/request"
)

var diacriticsFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns free text into a filename-safe slug: diacritics folded,
// lowercased, whitespace runs collapsed to a single hyphen, remaining
// non-word characters stripped and leading/trailing hyphens trimmed. The
// result is stable across calls.
func Slugify(text string) string {
	folded, _, err := transform.String(diacriticsFolder, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := false
	for _, c := range folded {
		switch {
		case unicode.IsSpace(c) || c == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
			lastHyphen = false
		}
	}
	return strings.Trim(b.String(), "-")
}

// Filename derives the deterministic download name for a rendered letter:
// `slug(recipient)_type_reference.pdf`. When no recipient slug is known the
// first line of the recipient address is used, falling back to
// "custom-recipient" for letters without one.
func Filename(recipientSlug, recipientAddress string, typ request.Type, reference string) string {
	slug := strings.TrimSpace(recipientSlug)
	if slug == "" {
		firstLine, _, _ := strings.Cut(recipientAddress, "\n")
		slug = Slugify(firstLine)
	}
	if slug == "" {
		slug = "custom-recipient"
	}
	return slug + "_" + string(typ) + "_" + reference + ".pdf"
}
