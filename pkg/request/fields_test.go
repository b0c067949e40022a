package request

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeFields_AppendsMissingRequirements(t *testing.T) {
	current := []IdentityField{
		{Kind: FieldKindName, Description: "Name", Optional: true, Value: TextValue("Jane Doe")},
	}
	required := []IdentityField{
		{Kind: FieldKindName, Description: "Full name"},
		{Kind: FieldKindBirthdate, Description: "Date of birth"},
	}

	got := MergeFields(current, required, MergeOptions{})

	want := []IdentityField{
		{Kind: FieldKindName, Description: "Name", Optional: false, Value: TextValue("Jane Doe")},
		{Kind: FieldKindBirthdate, Description: "Date of birth"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFields_Idempotent(t *testing.T) {
	current := []IdentityField{
		{Kind: FieldKindName, Optional: true, Value: TextValue("Jane Doe")},
		{Kind: "customer-id", Description: "Customer number", Value: TextValue("C-1")},
	}
	required := []IdentityField{
		{Kind: FieldKindName, Description: "Full name"},
		{Kind: FieldKindAddress, Description: "Address", Optional: true},
	}

	for _, opts := range []MergeOptions{
		{},
		{PreferRequiredOrder: true},
		{DropUnrequired: true},
		{PreferRequiredOrder: true, DropUnrequired: true},
	} {
		once := MergeFields(current, required, opts)
		twice := MergeFields(once, required, opts)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("merge with %+v not idempotent (-once +twice):\n%s", opts, diff)
		}
	}
}

func TestMergeFields_NoDataLoss(t *testing.T) {
	current := []IdentityField{
		{Kind: FieldKindName, Value: TextValue("Jane Doe")},
		{Kind: FieldKindAddress, Value: AddressValue(Address{Street: "Main St 1", Place: "Berlin"})},
	}
	required := []IdentityField{
		{Kind: FieldKindName, Value: TextValue("SOMEONE ELSE")},
		{Kind: FieldKindAddress},
	}

	got := MergeFields(current, required, MergeOptions{})

	for _, kind := range []string{FieldKindName, FieldKindAddress} {
		var want, have FieldValue
		for _, f := range current {
			if f.Kind == kind {
				want = f.Value
			}
		}
		for _, f := range got {
			if f.Kind == kind {
				have = f.Value
			}
		}
		if diff := cmp.Diff(want, have); diff != "" {
			t.Fatalf("value of %q changed without OverwriteValues (-want +have):\n%s", kind, diff)
		}
	}
}

func TestMergeFields_OverwriteValuesNeverAppliesEmpty(t *testing.T) {
	current := []IdentityField{{Kind: FieldKindName, Value: TextValue("Jane Doe")}}
	required := []IdentityField{{Kind: FieldKindName}}

	got := MergeFields(current, required, MergeOptions{OverwriteValues: true})
	if got[0].Value.Text != "Jane Doe" {
		t.Fatalf("empty incoming value clobbered existing data: %+v", got[0])
	}

	required[0].Value = TextValue("John Smith")
	got = MergeFields(current, required, MergeOptions{OverwriteValues: true})
	if got[0].Value.Text != "John Smith" {
		t.Fatalf("forced overwrite did not apply: %+v", got[0])
	}
}

func TestMergeFields_FillsEmptyValues(t *testing.T) {
	current := []IdentityField{{Kind: FieldKindName}}
	required := []IdentityField{{Kind: FieldKindName, Value: TextValue("Jane Doe")}}

	got := MergeFields(current, required, MergeOptions{})
	if got[0].Value.Text != "Jane Doe" {
		t.Fatalf("empty existing value should be filled, got %+v", got[0])
	}
}

func TestMergeFields_OptionalReconciliation(t *testing.T) {
	cases := []struct {
		name string
		opts MergeOptions
		cur  bool
		req  bool
		want bool
	}{
		{name: "mandatory wins over optional", cur: true, req: false, want: false},
		{name: "optional never relaxes mandatory", cur: false, req: true, want: false},
		{name: "overwrite makes required win", opts: MergeOptions{OverwriteOptional: true}, cur: false, req: true, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeFields(
				[]IdentityField{{Kind: FieldKindName, Optional: tc.cur}},
				[]IdentityField{{Kind: FieldKindName, Optional: tc.req}},
				tc.opts,
			)
			if got[0].Optional != tc.want {
				t.Fatalf("optional = %v, want %v", got[0].Optional, tc.want)
			}
		})
	}
}

func TestMergeFields_DropUnrequired(t *testing.T) {
	current := []IdentityField{
		{Kind: "customer-id", Value: TextValue("C-1")},
		{Kind: FieldKindName, Value: TextValue("Jane Doe")},
	}
	required := []IdentityField{{Kind: FieldKindName}}

	got := MergeFields(current, required, MergeOptions{DropUnrequired: true})
	if len(got) != 1 || got[0].Kind != FieldKindName {
		t.Fatalf("expected only the required field to remain, got %+v", got)
	}
}

func TestMergeFields_PreferRequiredOrder(t *testing.T) {
	current := []IdentityField{
		{Kind: "customer-id"},
		{Kind: FieldKindAddress},
		{Kind: FieldKindName},
	}
	required := []IdentityField{
		{Kind: FieldKindName},
		{Kind: FieldKindBirthdate},
		{Kind: FieldKindAddress},
	}

	got := MergeFields(current, required, MergeOptions{PreferRequiredOrder: true})

	kinds := make([]string, len(got))
	for i, f := range got {
		kinds[i] = f.Kind
	}
	want := []string{FieldKindName, FieldKindBirthdate, FieldKindAddress, "customer-id"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFields_DoesNotMutateInputs(t *testing.T) {
	current := []IdentityField{{Kind: FieldKindName, Optional: true}}
	required := []IdentityField{{Kind: FieldKindName, Optional: false, Value: TextValue("x")}}

	_ = MergeFields(current, required, MergeOptions{OverwriteValues: true, OverwriteOptional: true})

	if !current[0].Optional || !current[0].Value.IsEmpty() {
		t.Fatalf("merge mutated its input: %+v", current[0])
	}
}
