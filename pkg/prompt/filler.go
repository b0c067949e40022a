package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-lettergen/pkg/request"
)

// Filler walks a record's identity fields and prompts for the ones still
// empty. Mandatory fields must be answered; optional fields may be skipped
// with an empty answer.
type Filler struct {
	driver Driver
}

// FillerOption customises a Filler.
type FillerOption func(*Filler)

// WithDriver overrides the prompt driver, mainly for tests.
func WithDriver(driver Driver) FillerOption {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// NewFiller builds a Filler backed by the terminal survey driver unless
// WithDriver supplies another one.
func NewFiller(options ...FillerOption) *Filler {
	f := &Filler{driver: NewSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Fill prompts for every empty identity field and returns the completed field
// list. The input slice is never mutated.
func (f *Filler) Fill(ctx context.Context, fields []request.IdentityField) ([]request.IdentityField, error) {
	out := request.CloneFields(fields)

	for i, field := range out {
		if !field.Value.IsEmpty() {
			continue
		}

		value, err := f.askField(ctx, field)
		if err != nil {
			return nil, err
		}
		out[i].Value = value
	}
	return out, nil
}

func (f *Filler) askField(ctx context.Context, field request.IdentityField) (request.FieldValue, error) {
	if field.Kind == request.FieldKindAddress {
		return f.askAddress(ctx, field)
	}

	label := field.Description
	if label == "" {
		label = field.Kind
	}

	cfg := InputConfig{Message: label}
	if !field.Optional {
		cfg.Validator = requiredValidator(label)
	} else {
		cfg.Help = "optional, leave empty to skip"
	}

	text, err := f.driver.Input(ctx, cfg)
	if err != nil {
		return request.FieldValue{}, fmt.Errorf("prompt: field %q: %w", field.Kind, err)
	}
	return request.TextValue(strings.TrimSpace(text)), nil
}

// askAddress collects the structured address parts one line at a time.
func (f *Filler) askAddress(ctx context.Context, field request.IdentityField) (request.FieldValue, error) {
	label := field.Description
	if label == "" {
		label = "Address"
	}

	var addr request.Address
	parts := []struct {
		message  string
		target   *string
		required bool
	}{
		{label + ", street", &addr.Street, !field.Optional},
		{label + ", postal code and place", &addr.Place, !field.Optional},
		{label + ", country", &addr.Country, false},
	}

	for _, part := range parts {
		cfg := InputConfig{Message: part.message}
		if part.required {
			cfg.Validator = requiredValidator(part.message)
		}
		text, err := f.driver.Input(ctx, cfg)
		if err != nil {
			return request.FieldValue{}, fmt.Errorf("prompt: field %q: %w", field.Kind, err)
		}
		*part.target = strings.TrimSpace(text)
	}
	return request.AddressValue(addr), nil
}

// AskSignature prompts for the signature text used under the letter.
func (f *Filler) AskSignature(ctx context.Context, current request.Signature) (request.Signature, error) {
	text, err := f.driver.Input(ctx, InputConfig{
		Message: "Signature (full name)",
		Default: current.Value,
	})
	if err != nil {
		return request.Signature{}, fmt.Errorf("prompt: signature: %w", err)
	}
	return request.Signature{Kind: "text", Value: strings.TrimSpace(text)}, nil
}

// AskTransportMedium lets the user pick how the letter should be sent,
// starting from the current record value.
func (f *Filler) AskTransportMedium(ctx context.Context, current request.TransportMedium) (request.TransportMedium, error) {
	media := []request.TransportMedium{request.MediumFax, request.MediumLetter, request.MediumEmail}

	options := make([]string, len(media))
	defaultIndex := 0
	for i, m := range media {
		options[i] = string(m)
		if m == current {
			defaultIndex = i
		}
	}

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Transport medium",
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", fmt.Errorf("prompt: transport medium: %w", err)
	}
	if idx < 0 || idx >= len(media) {
		return current, nil
	}
	return media[idx], nil
}

func requiredValidator(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}
