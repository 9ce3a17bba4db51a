package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldKindFromInput(t *testing.T) {
	tests := []struct {
		tag       string
		inputType string
		want      FieldKind
		ok        bool
	}{
		{"textarea", "", KindTextarea, true},
		{"input", "", KindText, true},
		{"input", "text", KindText, true},
		{"input", "number", KindNumber, true},
		{"input", "date", KindDate, true},
		{"input", "email", KindEmail, true},
		{"input", "tel", KindTel, true},
		{"input", "url", KindURL, true},
		{"input", "radio", "", false},
		{"input", "checkbox", "", false},
		{"input", "file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.inputType, func(t *testing.T) {
			got, ok := FieldKindFromInput(tt.tag, tt.inputType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldDescriptor_DisplayText(t *testing.T) {
	assert.Equal(t, "Years of experience", FieldDescriptor{Label: "Years of experience", Placeholder: "e.g. 3"}.DisplayText())
	assert.Equal(t, "GPA", FieldDescriptor{AriaLabel: "GPA", Name: "gpa"}.DisplayText())
	assert.Equal(t, "e.g. 3", FieldDescriptor{Placeholder: "e.g. 3"}.DisplayText())
	assert.Equal(t, "(unlabelled field)", FieldDescriptor{}.DisplayText())
}

func TestCheckboxGroup_AsRadioGroup(t *testing.T) {
	group := NewRadioEquivalent("Do you require sponsorship?", []string{"Yes", "No"})
	radio := group.AsRadioGroup("grp-1")

	assert.Equal(t, "grp-1", radio.GroupID)
	assert.Equal(t, "Do you require sponsorship?", radio.QuestionText)
	assert.Equal(t, 2, radio.OptionCount)

	standard := NewStandardCheckbox("I agree to the terms")
	assert.Equal(t, CheckboxStandard, standard.Kind)
	assert.Empty(t, standard.OptionLabels)
}

func TestClassification_String(t *testing.T) {
	assert.Equal(t, "NUMERIC", Numeric.String())
	assert.Equal(t, "TIER1_IDENTITY(full_name)", Tier1(SubtypeFullName).String())
	assert.Equal(t, "SELF_IDENTIFICATION(gender)", SelfIdentification(SubtypeGender).String())
	assert.Equal(t, "tier-2", Tier2(SubtypeEmail).Tier())
	assert.Equal(t, "generic", Text.Tier())
}

func TestResolution_Resolved(t *testing.T) {
	assert.False(t, Unresolved("unmatched").Resolved())
	assert.Equal(t, NoOption, Unresolved("unmatched").Index)
	assert.True(t, IndexResolution(0, ConfidenceHigh, "authorized_to_work").Resolved())
	assert.True(t, IndexResolution(2, ConfidenceMedium, "gender").Resolved())
	assert.True(t, CheckResolution(false, "communication").Resolved())
	assert.False(t, Resolution{}.Resolved())
}
