package history

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lettergen/pkg/request"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "standard request",
			entry: Entry{Reference: "20250110-REF42", Type: request.TypeAccess},
			want:  "20250110-REF42-access",
		},
		{
			name:  "custom response includes response type",
			entry: Entry{Reference: "20250110-REF42", Type: request.TypeCustom, ResponseType: "admonition"},
			want:  "20250110-REF42-custom-admonition",
		},
		{
			name:  "custom without response type",
			entry: Entry{Reference: "20250110-REF42", Type: request.TypeCustom},
			want:  "20250110-REF42-custom",
		},
		{
			name:  "response type ignored for standard requests",
			entry: Entry{Reference: "R", Type: request.TypeErasure, ResponseType: "admonition"},
			want:  "R-erasure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.entry); got != tt.want {
				t.Fatalf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	entry := Entry{
		Reference:        "20250110-REF42",
		Date:             "2025-01-10",
		Type:             request.TypeAccess,
		RecipientSlug:    "acme-gmbh",
		RecipientAddress: "Acme GmbH\nMain St 1",
		TransportMedium:  request.MediumFax,
	}
	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, Key(entry))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(entry, got); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryNotFound(t *testing.T) {
	store := NewMemory()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
