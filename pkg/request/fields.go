package request

import "strings"

// Well-known identity field kinds. Recipients may require arbitrary kinds;
// these are the ones the library itself knows how to prefill.
const (
	FieldKindName      = "name"
	FieldKindBirthdate = "birthdate"
	FieldKindAddress   = "address"
	FieldKindEmail     = "email"
)

// Address is the structured value of an address-kind identity field.
type Address struct {
	Street  string `yaml:"street" json:"street"`
	Street2 string `yaml:"street2,omitempty" json:"street2,omitempty"`
	Place   string `yaml:"place" json:"place"`
	Country string `yaml:"country,omitempty" json:"country,omitempty"`
	Primary bool   `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// IsZero reports whether no address component is set.
func (a Address) IsZero() bool {
	return a.Street == "" && a.Street2 == "" && a.Place == "" && a.Country == ""
}

// Lines returns the non-empty address components in display order.
func (a Address) Lines() []string {
	lines := make([]string, 0, 4)
	for _, l := range []string{a.Street, a.Street2, a.Place, a.Country} {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// FieldValue is the polymorphic value of an identity field: a plain string
// for most kinds, a structured address for address-kind fields. Exactly one
// side is meaningful, selected by the owning field's Kind.
type FieldValue struct {
	Text    string
	Address Address
}

// TextValue wraps a plain string value.
func TextValue(s string) FieldValue {
	return FieldValue{Text: s}
}

// AddressValue wraps a structured address value.
func AddressValue(a Address) FieldValue {
	return FieldValue{Address: a}
}

// IsEmpty reports whether the value carries no data on either side.
func (v FieldValue) IsEmpty() bool {
	return strings.TrimSpace(v.Text) == "" && v.Address.IsZero()
}

// IdentityField is one atomic piece of the requester's personal data together
// with the recipient-facing description and optionality flag. Kind is the
// uniqueness key within a field list.
type IdentityField struct {
	Kind        string
	Description string
	Optional    bool
	Value       FieldValue
}

// CloneFields copies a field slice so merges never alias caller state.
func CloneFields(fields []IdentityField) []IdentityField {
	if fields == nil {
		return nil
	}
	out := make([]IdentityField, len(fields))
	copy(out, fields)
	return out
}

// MergeOptions tune MergeFields. The zero value is the conservative merge
// used on recipient selection: keep edits, append missing requirements.
type MergeOptions struct {
	// OverwriteValues lets a non-empty incoming value replace a non-empty
	// existing one. An empty incoming value never clobbers existing data.
	OverwriteValues bool
	// OverwriteOptional makes the required list's optionality win outright.
	// Otherwise a field only changes from optional to mandatory, never back.
	OverwriteOptional bool
	// PreferRequiredOrder emits fields in required-list order, appending kept
	// fields that the required list does not mention.
	PreferRequiredOrder bool
	// DropUnrequired removes existing fields absent from the required list.
	// Used when switching recipients so fields irrelevant to the new
	// recipient do not leak into the next letter.
	DropUnrequired bool
}

// MergeFields reconciles the user's current identity fields with the field
// list a recipient requires. It is a pure function: inputs are never mutated
// and the result is deterministic.
func MergeFields(current, required []IdentityField, opts MergeOptions) []IdentityField {
	requiredByKind := make(map[string]IdentityField, len(required))
	for _, f := range required {
		if _, dup := requiredByKind[f.Kind]; dup {
			continue
		}
		requiredByKind[f.Kind] = f
	}

	currentKinds := make(map[string]struct{}, len(current))
	merged := make([]IdentityField, 0, len(current)+len(required))

	for _, existing := range current {
		currentKinds[existing.Kind] = struct{}{}

		req, wanted := requiredByKind[existing.Kind]
		if !wanted {
			if opts.DropUnrequired {
				continue
			}
			merged = append(merged, existing)
			continue
		}
		merged = append(merged, reconcileField(existing, req, opts))
	}

	// Requirements the user has no field for yet are taken verbatim.
	appended := make([]IdentityField, 0, len(required))
	for _, req := range required {
		if _, present := currentKinds[req.Kind]; present {
			continue
		}
		appended = append(appended, req)
	}

	if !opts.PreferRequiredOrder {
		return append(merged, appended...)
	}

	byKind := make(map[string]IdentityField, len(merged)+len(appended))
	for _, f := range merged {
		byKind[f.Kind] = f
	}
	for _, f := range appended {
		byKind[f.Kind] = f
	}

	out := make([]IdentityField, 0, len(byKind))
	for _, req := range required {
		if f, ok := byKind[req.Kind]; ok {
			out = append(out, f)
			delete(byKind, req.Kind)
		}
	}
	// Kept fields outside the required list retain their relative order.
	for _, f := range merged {
		if _, left := byKind[f.Kind]; left {
			out = append(out, f)
		}
	}
	return out
}

func reconcileField(existing, req IdentityField, opts MergeOptions) IdentityField {
	out := existing

	if opts.OverwriteOptional {
		out.Optional = req.Optional
	} else if existing.Optional && !req.Optional {
		// Mandatory always wins over optional unless explicitly overridden.
		out.Optional = false
	}

	if req.Description != "" && (out.Description == "" || opts.OverwriteOptional) {
		out.Description = req.Description
	}

	switch {
	case req.Value.IsEmpty():
		// Empty incoming values never erase user edits.
	case existing.Value.IsEmpty():
		out.Value = req.Value
	case opts.OverwriteValues:
		out.Value = req.Value
	}
	return out
}
