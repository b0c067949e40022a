package templatestore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-lettergen/pkg/template"
)

// HTTPOption customises the HTTP-backed store.
type HTTPOption func(*HTTP)

// WithHTTPClient overrides the http.Client used for fetches.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTP) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout bounds each fetch. Zero disables the per-request deadline.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTP) {
		s.timeout = timeout
	}
}

// WithSupportedLocales declares the locales the remote template tree serves.
// Requests for any other locale are rewritten to the default locale before
// hitting the network.
func WithSupportedLocales(locales ...string) HTTPOption {
	return func(s *HTTP) {
		s.supported = make(map[string]struct{}, len(locales))
		for _, locale := range locales {
			s.supported[strings.TrimSpace(locale)] = struct{}{}
		}
	}
}

// HTTP fetches templates from `{base}/templates/{locale}/{id}.txt`.
type HTTP struct {
	base          string
	client        *http.Client
	timeout       time.Duration
	defaultLocale string
	supported     map[string]struct{}
}

// NewHTTP builds an HTTP-backed store rooted at baseURL.
func NewHTTP(baseURL, defaultLocale string, options ...HTTPOption) (*HTTP, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("templatestore: base url is required")
	}
	defaultLocale = strings.TrimSpace(defaultLocale)
	if defaultLocale == "" {
		defaultLocale = "en"
	}

	s := &HTTP{
		base:          baseURL,
		client:        http.DefaultClient,
		timeout:       10 * time.Second,
		defaultLocale: defaultLocale,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Fetch implements template.Store. A 404 maps to template.ErrNotFound (caller
// error, never retried here); transport failures and other status codes are
// transient I/O errors the caller may retry.
func (s *HTTP) Fetch(ctx context.Context, locale, templateID string) (string, error) {
	if templateID == "" {
		return "", fmt.Errorf("templatestore: template id is required: %w", template.ErrNotFound)
	}

	locale = s.resolveLocale(locale)
	url := s.base + "/templates/" + locale + "/" + templateID + ".txt"

	reqCtx := ctx
	var cancel context.CancelFunc
	if s.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("templatestore: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("templatestore: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("templatestore: %s/%s: %w", locale, templateID, template.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("templatestore: fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("templatestore: read %s: %w", url, err)
	}
	return string(data), nil
}

func (s *HTTP) resolveLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return s.defaultLocale
	}
	if s.supported != nil {
		if _, ok := s.supported[locale]; !ok {
			return s.defaultLocale
		}
	}
	return locale
}
