package lettergen

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-lettergen/pkg/request"
)

func TestGenerateText(t *testing.T) {
	rec := Recipient{
		Name:    "Acme GmbH",
		Address: "Main St 1\n12345 Berlin",
		Slug:    "acme-gmbh",
	}
	fields := []IdentityField{
		{Kind: request.FieldKindName, Description: "Name", Value: request.TextValue("Jane Doe")},
	}

	out, err := GenerateText(context.Background(), request.TypeAccess, rec, fields, "en")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"My reference:",
		"Art. 15 GDPR",
		"Name: Jane Doe",
		"Dear Sir or Madam:",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestGenerateTextUnknownType(t *testing.T) {
	rec := Recipient{Name: "Acme GmbH", Address: "Main St 1"}

	_, err := GenerateText(context.Background(), request.Type("portability"), rec, nil, "en")
	if err == nil {
		t.Fatal("expected error for a type without templates")
	}
}
