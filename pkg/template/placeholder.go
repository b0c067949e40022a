package template

import (
	"regexp"
	"strconv"
)

// Named tokens every response template can rely on. Stores may serve older
// templates carrying tokens this library does not know; those pass through
// untouched.
const (
	TokenRequestArticle          = "request_article"
	TokenRequestDate             = "request_date"
	TokenRequestRecipientAddress = "request_recipient_address"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Substitute replaces `{name}` and `{0}`-style tokens in text with the
// supplied arguments. It is fail-open by design: tokens with no matching
// argument stay in the output literally, so a malformed or outdated template
// still yields a usable document instead of aborting the pipeline. Everything
// outside substituted spans, including whitespace and layout, is preserved.
func Substitute(text string, positional []string, named map[string]string) string {
	if text == "" {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		token := match[1 : len(match)-1]

		if idx, err := strconv.Atoi(token); err == nil {
			if idx >= 0 && idx < len(positional) {
				return positional[idx]
			}
			return match
		}
		if value, ok := named[token]; ok {
			return value
		}
		return match
	})
}
