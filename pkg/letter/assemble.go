package letter

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-lettergen/pkg/i18n"
	"github.com/goliatone/go-lettergen/pkg/request"
	"github.com/goliatone/go-lettergen/pkg/template"
)

// Assemble projects a request record plus its fetched template text into a
// Letter. It is pure: the record is never mutated, missing data degrades to
// blank values, and the same inputs always yield the same letter.
func Assemble(rec *request.Record, templateText string, cat *i18n.Catalog) Letter {
	if rec == nil {
		return Letter{}
	}
	if rec.Type == request.TypeCustom {
		return assembleCustom(rec, cat)
	}
	return assembleStandard(rec, templateText, cat)
}

func assembleStandard(rec *request.Record, templateText string, cat *i18n.Catalog) Letter {
	named := map[string]string{
		"identity_block":    identityBlock(rec.IdentityFields),
		"erasure_data":      erasureClause(rec),
		"runs_list":         strings.Join(rec.RecipientRuns, "\n"),
		"recipient_address": rec.RecipientAddress,
		"language":          rec.Language,
	}

	signature := rec.Signature
	if signature.Kind == "" {
		signature = request.Signature{Kind: "text"}
	}

	var senderName string
	var senderAddr request.Address
	if f, ok := rec.Field(request.FieldKindName); ok {
		senderName = f.Value.Text
	}
	if f, ok := rec.Field(request.FieldKindAddress); ok {
		senderAddr = f.Value.Address
	}

	return Letter{
		Subject:          subjectFor(rec, cat),
		Content:          template.Substitute(templateText, nil, named),
		RecipientAddress: rec.RecipientAddress,
		SenderOneLine:    FormatAddress(senderAddr, " • ", senderName),
		InformationBlock: informationBlock(rec, cat),
		ReferenceBarcode: Barcode(rec.Reference),
		Signature:        signature,
		Language:         rec.Language,
		Reference:        rec.Reference,
	}
}

func assembleCustom(rec *request.Record, cat *i18n.Catalog) Letter {
	signature := rec.Signature
	signature.Name = rec.CustomData.Name

	return Letter{
		Subject:          rec.CustomData.Subject,
		Content:          rec.CustomData.Content,
		RecipientAddress: rec.RecipientAddress,
		SenderOneLine:    FormatAddress(rec.CustomData.SenderAddress, " • ", rec.CustomData.Name),
		InformationBlock: informationBlock(rec, cat),
		ReferenceBarcode: Barcode(rec.Reference),
		Signature:        signature,
		Language:         rec.Language,
		Reference:        rec.Reference,
	}
}

func subjectFor(rec *request.Record, cat *i18n.Catalog) string {
	if cat == nil {
		return string(rec.Type)
	}
	return cat.T(rec.Language, "subject-"+string(rec.Type))
}

// informationBlock is the deterministic header summary carrying the
// reference, date and, for standard requests, the legal basis.
func informationBlock(rec *request.Record, cat *i18n.Catalog) string {
	refLabel, dateLabel := "My reference", "Date"
	if cat != nil {
		refLabel = cat.T(rec.Language, "my-reference")
		dateLabel = cat.T(rec.Language, "date")
	}

	lines := []string{
		refLabel + ": " + rec.Reference,
		dateLabel + ": " + rec.Date,
	}
	if article := rec.Type.Article(); article != 0 {
		lines = append(lines, fmt.Sprintf("Art. %d GDPR", article))
	}
	return strings.Join(lines, "\n")
}

// identityBlock renders the identity fields as "description: value" lines.
// Unfilled fields yield a blank value rather than failing assembly.
func identityBlock(fields []request.IdentityField) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		label := f.Description
		if label == "" {
			label = f.Kind
		}
		lines = append(lines, label+": "+fieldValueText(f))
	}
	return strings.Join(lines, "\n")
}

func fieldValueText(f request.IdentityField) string {
	if !f.Value.Address.IsZero() {
		return strings.Join(f.Value.Address.Lines(), ", ")
	}
	return f.Value.Text
}

func erasureClause(rec *request.Record) string {
	if rec.EraseAll || strings.TrimSpace(rec.ErasureData) == "" {
		return ""
	}
	return rec.ErasureData
}
