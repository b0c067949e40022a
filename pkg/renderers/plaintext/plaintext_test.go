package plaintext

import (
	"context"
	"testing"

	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/render"
	"github.com/goliatone/go-lettergen/pkg/request"
)

func TestRender(t *testing.T) {
	r := New()
	doc := letter.Letter{
		InformationBlock: "My reference: R\nDate: 2025-01-02",
		Content:          "Body text.",
		Signature:        request.Signature{Kind: "text", Value: "Jane Doe"},
	}

	out, err := r.Render(context.Background(), doc, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "My reference: R\nDate: 2025-01-02\n\nBody text.\n\nJane Doe\n"
	if string(out) != want {
		t.Fatalf("Render() = %q, want %q", out, want)
	}
}
