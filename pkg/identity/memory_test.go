package identity

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lettergen/pkg/request"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	fields := []request.IdentityField{
		{Kind: request.FieldKindName, Description: "Name", Value: request.TextValue("Jane Doe")},
		{Kind: request.FieldKindBirthdate, Description: "Date of birth", Optional: true, Value: request.TextValue("1990-01-02")},
	}
	if err := store.StoreArray(ctx, fields); err != nil {
		t.Fatalf("StoreArray: %v", err)
	}

	all, err := store.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if diff := cmp.Diff(fields, all); diff != "" {
		t.Fatalf("GetAll mismatch (-want +got):\n%s", diff)
	}

	mandatoryOnly, err := store.GetAll(ctx, false)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(mandatoryOnly) != 1 || mandatoryOnly[0].Kind != request.FieldKindName {
		t.Fatalf("GetAll(false) = %+v, want name only", mandatoryOnly)
	}

	fixed, err := store.GetFixed(ctx, request.FieldKindName)
	if err != nil {
		t.Fatalf("GetFixed: %v", err)
	}
	if fixed == nil || fixed.Value.Text != "Jane Doe" {
		t.Fatalf("GetFixed = %+v", fixed)
	}
}

func TestMemoryEmptyValuesDoNotErase(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.StoreArray(ctx, []request.IdentityField{
		{Kind: request.FieldKindName, Value: request.TextValue("Jane Doe")},
	}); err != nil {
		t.Fatalf("StoreArray: %v", err)
	}
	if err := store.StoreArray(ctx, []request.IdentityField{
		{Kind: request.FieldKindName},
	}); err != nil {
		t.Fatalf("StoreArray: %v", err)
	}

	fixed, err := store.GetFixed(ctx, request.FieldKindName)
	if err != nil {
		t.Fatalf("GetFixed: %v", err)
	}
	if fixed == nil || fixed.Value.Text != "Jane Doe" {
		t.Fatalf("saved value erased by empty write: %+v", fixed)
	}
}

func TestMemorySignature(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	sig, err := store.GetSignature(ctx)
	if err != nil || sig != nil {
		t.Fatalf("GetSignature on empty store = %+v, %v", sig, err)
	}

	want := request.Signature{Kind: "text", Value: "Jane Doe"}
	if err := store.StoreSignature(ctx, want); err != nil {
		t.Fatalf("StoreSignature: %v", err)
	}

	sig, err = store.GetSignature(ctx)
	if err != nil {
		t.Fatalf("GetSignature: %v", err)
	}
	if sig == nil || *sig != want {
		t.Fatalf("GetSignature = %+v, want %+v", sig, want)
	}
}

func TestNopIsAlwaysEmpty(t *testing.T) {
	store := Nop{}
	ctx := context.Background()

	if err := store.StoreArray(ctx, []request.IdentityField{
		{Kind: request.FieldKindName, Value: request.TextValue("Jane Doe")},
	}); err != nil {
		t.Fatalf("StoreArray: %v", err)
	}

	all, err := store.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("Nop store returned fields: %+v", all)
	}
}
