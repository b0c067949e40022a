package templatestore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-lettergen/pkg/template"
)

func TestFSFetch(t *testing.T) {
	fsys := fstest.MapFS{
		"en/access-default.txt": {Data: []byte("english access")},
		"de/access-default.txt": {Data: []byte("deutsche auskunft")},
	}
	store, err := NewFS(fsys, "en")
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	got, err := store.Fetch(context.Background(), "de", "access-default")
	if err != nil || got != "deutsche auskunft" {
		t.Fatalf("Fetch(de) = %q, %v", got, err)
	}

	// Unknown locale falls back to the default transparently.
	got, err = store.Fetch(context.Background(), "fr", "access-default")
	if err != nil || got != "english access" {
		t.Fatalf("Fetch(fr) = %q, %v", got, err)
	}

	// Unknown template id is a caller error.
	_, err = store.Fetch(context.Background(), "en", "no-such-template")
	if !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSEmbeddedDefaults(t *testing.T) {
	store, err := NewFS(nil, "en")
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	for _, id := range []string{"access-default", "erasure-default", "rectification-default", "admonition", "complaint"} {
		for _, locale := range []string{"en", "de"} {
			text, err := store.Fetch(context.Background(), locale, id)
			if err != nil {
				t.Fatalf("embedded %s/%s: %v", locale, id, err)
			}
			if strings.TrimSpace(text) == "" {
				t.Fatalf("embedded %s/%s is empty", locale, id)
			}
		}
	}
}

func TestHTTPFetch(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		switch r.URL.Path {
		case "/templates/en/access-default.txt":
			_, _ = w.Write([]byte("remote access template"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store, err := NewHTTP(srv.URL, "en", WithSupportedLocales("en", "de"), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}

	got, err := store.Fetch(context.Background(), "en", "access-default")
	if err != nil || got != "remote access template" {
		t.Fatalf("Fetch = %q, %v", got, err)
	}

	// Unsupported locale is rewritten before the request goes out.
	if _, err := store.Fetch(context.Background(), "xx", "access-default"); err != nil {
		t.Fatalf("fallback fetch: %v", err)
	}
	last := requested[len(requested)-1]
	if last != "/templates/en/access-default.txt" {
		t.Fatalf("expected fallback to en, requested %s", last)
	}

	_, err = store.Fetch(context.Background(), "en", "missing")
	if !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for 404, got %v", err)
	}
}

func TestHTTPFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store, err := NewHTTP(srv.URL, "en")
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}

	_, err = store.Fetch(context.Background(), "en", "access-default")
	if err == nil || errors.Is(err, template.ErrNotFound) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
