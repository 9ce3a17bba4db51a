// Package ui defines the inspection and driving surface the engine needs from a
// rendered Easy Apply page. Implementations live in snapshot (static HTML) and
// browser (live Chrome).
package ui

import "context"

// ElementKind selects which modal elements Elements returns
type ElementKind string

// Element kinds
const (
	ElementText     ElementKind = "text"
	ElementRadio    ElementKind = "radio"
	ElementCheckbox ElementKind = "checkbox"
	ElementSelect   ElementKind = "select"
)

// Option is one entry of a dropdown, in document order
type Option struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Element is a raw snapshot of one form control inside the modal. ID is an
// opaque handle that Driver methods accept.
type Element struct {
	ID            string   `json:"id"`
	HTMLID        string   `json:"html_id,omitempty"`
	Tag           string   `json:"tag"`
	InputType     string   `json:"input_type,omitempty"`
	Name          string   `json:"name,omitempty"`
	Placeholder   string   `json:"placeholder,omitempty"`
	AriaLabel     string   `json:"aria_label,omitempty"`
	LabelText     string   `json:"label_text,omitempty"`
	AncestorText  string   `json:"ancestor_text,omitempty"`
	GroupKey      string   `json:"group_key,omitempty"`
	GroupQuestion string   `json:"group_question,omitempty"`
	Value         string   `json:"value,omitempty"`
	Visible       bool     `json:"visible"`
	Disabled      bool     `json:"disabled"`
	Checked       bool     `json:"checked,omitempty"`
	Options       []Option `json:"options,omitempty"`
}

// Button is a clickable control inside the modal
type Button struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	AriaLabel string `json:"aria_label,omitempty"`
	Disabled  bool   `json:"disabled"`
}

// Label returns the button's visible text, or its aria-label when it has none
func (b Button) Label() string {
	if b.Text != "" {
		return b.Text
	}
	return b.AriaLabel
}

// Inspector reads the current UI. Absence is reported as empty results, never
// as an error; errors mean the UI could not be inspected at all.
type Inspector interface {
	ModalVisible(ctx context.Context) (bool, error)
	SuccessVisible(ctx context.Context) (bool, error)
	EntryPointVisible(ctx context.Context) (bool, error)
	AlreadyApplied(ctx context.Context) (bool, error)
	Buttons(ctx context.Context) ([]Button, error)
	Elements(ctx context.Context, kind ElementKind) ([]Element, error)
	ValidationBanner(ctx context.Context) (string, bool, error)
	InlineError(ctx context.Context, elementID string) (string, bool, error)
}

// Driver performs user actions
type Driver interface {
	Navigate(ctx context.Context, url string) error
	OpenForm(ctx context.Context) error
	Fill(ctx context.Context, elementID, value string) error
	SetChecked(ctx context.Context, elementID string, checked bool) error
	SelectOption(ctx context.Context, elementID string, optionIndex int) error
	Click(ctx context.Context, buttonID string) error
}

// Page is a UI that can be both inspected and driven
type Page interface {
	Inspector
	Driver
}
