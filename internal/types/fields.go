// Package types provides type definitions for structured data used throughout the easy-apply engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FieldKind identifies the input kind of a free-entry field
type FieldKind string

// Field kinds recognised by perception
const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindURL      FieldKind = "url"
)

// FieldKindFromInput maps a tag name and input type attribute to a FieldKind.
// Returns false for inputs that are not free-entry fields (radio, checkbox, file, ...).
func FieldKindFromInput(tag, inputType string) (FieldKind, bool) {
	if tag == "textarea" {
		return KindTextarea, true
	}
	switch inputType {
	case "", "text", "search":
		return KindText, true
	case "number":
		return KindNumber, true
	case "date":
		return KindDate, true
	case "email":
		return KindEmail, true
	case "tel":
		return KindTel, true
	case "url":
		return KindURL, true
	}
	return "", false
}

// FieldDescriptor is an immutable snapshot of a free-entry field taken once per perception pass
type FieldDescriptor struct {
	Kind         FieldKind `json:"kind"`
	Label        string    `json:"label"`
	Placeholder  string    `json:"placeholder,omitempty"`
	AriaLabel    string    `json:"aria_label,omitempty"`
	Name         string    `json:"name,omitempty"`
	CurrentValue string    `json:"current_value,omitempty"`
}

// DisplayText returns the most descriptive non-empty text for the field
func (d FieldDescriptor) DisplayText() string {
	for _, s := range []string{d.Label, d.AriaLabel, d.Placeholder, d.Name} {
		if s != "" {
			return s
		}
	}
	return "(unlabelled field)"
}

// RadioGroupDescriptor describes a group of radio inputs sharing a name
type RadioGroupDescriptor struct {
	GroupID      string   `json:"group_id"`
	QuestionText string   `json:"question_text"`
	OptionLabels []string `json:"option_labels"`
	OptionCount  int      `json:"option_count"`
}

// SelectDescriptor describes a dropdown. Options with empty text are never included.
type SelectDescriptor struct {
	Label        string   `json:"label"`
	OptionTexts  []string `json:"option_texts"`
	OptionValues []string `json:"option_values"`
	CurrentValue string   `json:"current_value,omitempty"`
}

// OptionCount returns the number of non-empty options
func (s SelectDescriptor) OptionCount() int {
	return len(s.OptionTexts)
}

// CheckboxKind discriminates the two checkbox group shapes
type CheckboxKind string

// Checkbox group kinds
const (
	CheckboxRadioEquivalent CheckboxKind = "radio_equivalent"
	CheckboxStandard        CheckboxKind = "standard"
)

// CheckboxGroup is either a mutually exclusive choice rendered as checkboxes
// (RadioEquivalent, QuestionText + OptionLabels) or a single independent box
// (Standard, Label). Exactly one shape is populated, selected by Kind.
type CheckboxGroup struct {
	Kind         CheckboxKind `json:"kind"`
	QuestionText string       `json:"question_text,omitempty"`
	OptionLabels []string     `json:"option_labels,omitempty"`
	Label        string       `json:"label,omitempty"`
}

// NewRadioEquivalent builds a radio-equivalent checkbox group
func NewRadioEquivalent(question string, labels []string) CheckboxGroup {
	return CheckboxGroup{Kind: CheckboxRadioEquivalent, QuestionText: question, OptionLabels: labels}
}

// NewStandardCheckbox builds an independent checkbox
func NewStandardCheckbox(label string) CheckboxGroup {
	return CheckboxGroup{Kind: CheckboxStandard, Label: label}
}

// AsRadioGroup views a radio-equivalent group as a radio group so it can share radio resolution
func (c CheckboxGroup) AsRadioGroup(groupID string) RadioGroupDescriptor {
	return RadioGroupDescriptor{
		GroupID:      groupID,
		QuestionText: c.QuestionText,
		OptionLabels: c.OptionLabels,
		OptionCount:  len(c.OptionLabels),
	}
}
