package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-lettergen/pkg/i18n"
)

// Type enumerates the supported request kinds.
type Type string

const (
	TypeAccess        Type = "access"
	TypeErasure       Type = "erasure"
	TypeRectification Type = "rectification"
	TypeCustom        Type = "custom"
)

// Article returns the GDPR article number backing the request type. Custom
// requests have no fixed legal basis and report zero.
func (t Type) Article() int {
	switch t {
	case TypeAccess:
		return 15
	case TypeRectification:
		return 16
	case TypeErasure:
		return 17
	default:
		return 0
	}
}

// TransportMedium enumerates how the finished letter leaves the system.
type TransportMedium string

const (
	MediumFax    TransportMedium = "fax"
	MediumLetter TransportMedium = "letter"
	MediumEmail  TransportMedium = "email"
)

// Signature captures how the requester signs the letter. Kind is either
// "text" or "image"; Value holds the text or an image data reference. Name is
// only set for custom requests, where the signer name comes from CustomData.
type Signature struct {
	Kind  string `yaml:"kind" json:"kind"`
	Value string `yaml:"value" json:"value"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
}

// CustomData carries the free-form letter pieces used when Type is custom.
type CustomData struct {
	Subject       string
	Content       string
	SenderAddress Address
	Name          string
}

// Recipient is the read-only description of the organization a request is
// addressed to, as delivered by the search collaborator.
type Recipient struct {
	Name                     string
	Address                  string
	Fax                      string
	Email                    string
	Slug                     string
	RequiredFields           []IdentityField
	SuggestedTransportMedium TransportMedium
	RequestLanguage          string
	Runs                     []string
	CustomTemplates          map[Type]string
}

// TemplateFor resolves the template id for a request type, preferring a
// recipient-specific override and falling back to "<type>-default".
func (r Recipient) TemplateFor(t Type) string {
	if id, ok := r.CustomTemplates[t]; ok && strings.TrimSpace(id) != "" {
		return id
	}
	return string(t) + "-default"
}

// Record is the canonical, mutable state of one in-progress request. It is
// owned by a single lifecycle instance; everything derived from it (letters,
// render jobs) is an immutable projection.
type Record struct {
	Type             Type            `validate:"required,oneof=access erasure rectification custom"`
	TransportMedium  TransportMedium `validate:"required,oneof=fax letter email"`
	IdentityFields   []IdentityField
	Reference        string `validate:"required"`
	Date             string `validate:"required,datetime=2006-01-02"`
	RecipientAddress string
	Signature        Signature
	EraseAll         bool
	ErasureData      string
	DataPortability  bool
	CustomData       CustomData
	RecipientRuns    []string
	Language         string `validate:"required"`
}

// New returns a fresh record for a new request session: an access request via
// fax, today's date, a newly generated reference and the locale's default
// identity fields.
func New(now time.Time, locale string, cat *i18n.Catalog) *Record {
	if cat != nil {
		locale = cat.Resolve(locale)
	}
	return &Record{
		Type:            TypeAccess,
		TransportMedium: MediumFax,
		IdentityFields:  DefaultFields(locale, cat),
		Reference:       NewReference(now),
		Date:            now.Format("2006-01-02"),
		Signature:       Signature{Kind: "text"},
		EraseAll:        true,
		Language:        locale,
	}
}

// DefaultFields returns the identity fields every new request starts with.
// Descriptions are localized through the catalog when one is supplied.
func DefaultFields(locale string, cat *i18n.Catalog) []IdentityField {
	desc := func(key, fallback string) string {
		if cat == nil {
			return fallback
		}
		return cat.T(locale, key)
	}
	return []IdentityField{
		{Kind: FieldKindName, Description: desc("field-name", "Name"), Optional: true},
		{Kind: FieldKindBirthdate, Description: desc("field-birthdate", "Date of birth"), Optional: true},
		{Kind: FieldKindAddress, Description: desc("field-address", "Address"), Optional: true},
	}
}

// Clone produces a deep copy of the record so callers can snapshot state
// without sharing the identity-field slices.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.IdentityFields = CloneFields(r.IdentityFields)
	out.RecipientRuns = append([]string(nil), r.RecipientRuns...)
	return &out
}

// Field returns the identity field with the given kind, if present.
func (r *Record) Field(kind string) (IdentityField, bool) {
	for _, f := range r.IdentityFields {
		if f.Kind == kind {
			return f, true
		}
	}
	return IdentityField{}, false
}

// SetField replaces the identity field with the same kind, appending it when
// no such field exists yet.
func (r *Record) SetField(field IdentityField) {
	for i := range r.IdentityFields {
		if r.IdentityFields[i].Kind == field.Kind {
			r.IdentityFields[i] = field
			return
		}
	}
	r.IdentityFields = append(r.IdentityFields, field)
}

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record's structural invariants. A failing validation is
// advisory (assembly still proceeds with blank values); it exists so hosts can
// surface gaps before the user finalizes a request.
func (r *Record) Validate() error {
	if err := recordValidator.Struct(r); err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if r.Type != TypeCustom && (r.CustomData.Subject != "" || r.CustomData.Content != "") {
		return fmt.Errorf("request: custom data populated on %s request", r.Type)
	}
	return nil
}
