package prompt

import (
	"testing"

	"github.com/AlecAivazis/survey/v2"
)

func TestAsSurveyValidator(t *testing.T) {
	var _ survey.Validator = asSurveyValidator(requiredValidator("Name"))

	v := asSurveyValidator(requiredValidator("Name"))

	if err := v("Jane Doe"); err != nil {
		t.Fatalf("valid answer rejected: %v", err)
	}
	if err := v(""); err == nil {
		t.Fatal("empty answer accepted by required validator")
	}
	if err := v("   "); err == nil {
		t.Fatal("whitespace answer accepted by required validator")
	}
	// Answers of unexpected types validate as empty input.
	if err := v(42); err == nil {
		t.Fatal("non-string answer accepted by required validator")
	}
}
