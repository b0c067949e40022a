package template

import (
	"context"
	"errors"
)

// ErrNotFound signals that the requested template id does not exist at the
// store. This is a caller error: unknown ids are never retried and never
// substituted with a fallback (unlike unknown locales, which stores resolve
// to their configured default transparently).
var ErrNotFound = errors.New("template: not found")

// Store is the I/O boundary that fetches raw template text for a
// (locale, templateID) pair. Implementations live in internal/templatestore;
// they carry no merge or substitution logic.
type Store interface {
	Fetch(ctx context.Context, locale, templateID string) (string, error)
}

// StoreFunc adapts a plain function to the Store interface.
type StoreFunc func(ctx context.Context, locale, templateID string) (string, error)

// Fetch implements Store.
func (f StoreFunc) Fetch(ctx context.Context, locale, templateID string) (string, error) {
	return f(ctx, locale, templateID)
}
