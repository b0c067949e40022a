package templatestore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-lettergen/pkg/template"
)

//go:embed templates
var embeddedTemplates embed.FS

// FS serves templates from a filesystem laid out as
// `<locale>/<templateID>.txt`. It backs the embedded default templates and is
// the store of choice for tests.
type FS struct {
	fsys          fs.FS
	defaultLocale string
}

// NewFS builds a filesystem-backed store. A nil fsys selects the embedded
// default templates shipped with the library.
func NewFS(fsys fs.FS, defaultLocale string) (*FS, error) {
	if fsys == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("templatestore: embedded templates: %w", err)
		}
		fsys = sub
	}
	defaultLocale = strings.TrimSpace(defaultLocale)
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	return &FS{fsys: fsys, defaultLocale: defaultLocale}, nil
}

// Fetch implements template.Store. Unknown locales fall back to the default
// locale transparently; an id missing within a known locale is ErrNotFound.
func (s *FS) Fetch(ctx context.Context, locale, templateID string) (string, error) {
	if templateID == "" {
		return "", fmt.Errorf("templatestore: template id is required: %w", template.ErrNotFound)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	locale = s.resolveLocale(locale)

	data, err := fs.ReadFile(s.fsys, locale+"/"+templateID+".txt")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("templatestore: %s/%s: %w", locale, templateID, template.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("templatestore: read %s/%s: %w", locale, templateID, err)
	}
	return string(data), nil
}

func (s *FS) resolveLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return s.defaultLocale
	}
	if info, err := fs.Stat(s.fsys, locale); err != nil || !info.IsDir() {
		return s.defaultLocale
	}
	return locale
}
