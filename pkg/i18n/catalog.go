package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog resolves locale-scoped message keys used while composing letters
// (fax routing lines, reference labels, default field descriptions). Lookups
// are fail-open: a missing key returns the key itself so a half-translated
// catalog still produces a usable document.
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	messages      map[string]map[string]string
}

// Option customises catalog construction.
type Option func(*config)

type config struct {
	fsys          fs.FS
	defaultLocale string
}

// WithFS loads locale documents from the provided filesystem instead of the
// embedded defaults. Files must be named `<locale>.yaml`.
func WithFS(fsys fs.FS) Option {
	return func(cfg *config) {
		cfg.fsys = fsys
	}
}

// WithDefaultLocale overrides the locale used when a requested locale is not
// part of the supported set.
func WithDefaultLocale(locale string) Option {
	return func(cfg *config) {
		cfg.defaultLocale = strings.TrimSpace(locale)
	}
}

// New builds a catalog from the embedded locale documents unless WithFS
// supplies an alternative source.
func New(options ...Option) (*Catalog, error) {
	cfg := &config{defaultLocale: "en"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	fsys := cfg.fsys
	if fsys == nil {
		sub, err := fs.Sub(embeddedLocales, "locales")
		if err != nil {
			return nil, fmt.Errorf("i18n: embedded locales: %w", err)
		}
		fsys = sub
	}

	messages, err := loadLocales(fsys)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("i18n: no locale documents found")
	}
	if _, ok := messages[cfg.defaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: default locale %q is not among the loaded locales", cfg.defaultLocale)
	}

	return &Catalog{
		defaultLocale: cfg.defaultLocale,
		messages:      messages,
	}, nil
}

func loadLocales(fsys fs.FS) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", p, err)
		}

		var doc map[string]string
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("i18n: parse %s: %w", p, err)
		}

		locale := strings.TrimSuffix(path.Base(p), ext)
		if locale == "" {
			return fmt.Errorf("i18n: file %s has no locale name", p)
		}
		if _, exists := out[locale]; exists {
			return fmt.Errorf("i18n: duplicate locale %q (file %s)", locale, p)
		}
		out[locale] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultLocale reports the configured fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Supported returns the sorted list of loaded locales.
func (c *Catalog) Supported() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	locales := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Has reports whether the locale is part of the supported set.
func (c *Catalog) Has(locale string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.messages[locale]
	return ok
}

// Resolve maps any locale onto a supported one, substituting the default
// locale when the requested one is unknown or empty.
func (c *Catalog) Resolve(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" || !c.Has(locale) {
		return c.defaultLocale
	}
	return locale
}

// T translates key for the given locale. Unknown locales fall back to the
// default locale; unknown keys return the key unchanged.
func (c *Catalog) T(locale, key string) string {
	msg, ok := c.Lookup(locale, key)
	if !ok {
		return key
	}
	return msg
}

// Lookup translates key for the given locale, reporting whether a message was
// found in either the requested or the default locale.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	locale = strings.TrimSpace(locale)
	if msgs, ok := c.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg, true
		}
	}
	if locale != c.defaultLocale {
		if msg, ok := c.messages[c.defaultLocale][key]; ok {
			return msg, true
		}
	}
	return "", false
}
