// Package state maps the live UI to a single ApplicationState. Checks run in a
// fixed priority order and the first positive check decides the state.
package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/easy-apply/internal/perception"
	"github.com/jonathan/easy-apply/internal/types"
	"github.com/jonathan/easy-apply/internal/ui"
)

// TextFieldFinder lists the unfilled free-entry fields of the current step.
// *perception.Perceiver satisfies it.
type TextFieldFinder interface {
	TextFieldCount(ctx context.Context) (int, error)
}

// Role is what a modal button does
type Role string

// Button roles
const (
	RoleNone   Role = ""
	RoleSubmit Role = "submit"
	RoleReview Role = "review"
	RoleNext   Role = "next"
)

// RoleOf classifies a modal button by its text, falling back to its aria-label
func RoleOf(b ui.Button) Role {
	for _, text := range []string{b.Text, b.AriaLabel} {
		lower := strings.ToLower(strings.TrimSpace(text))
		switch {
		case lower == "":
			continue
		case strings.Contains(lower, "submit"):
			return RoleSubmit
		case strings.Contains(lower, "review"):
			return RoleReview
		case strings.Contains(lower, "next"), strings.Contains(lower, "continue"):
			return RoleNext
		}
	}
	return RoleNone
}

// Controls holds the first modal button found for each role
type Controls struct {
	Submit *ui.Button
	Review *ui.Button
	Next   *ui.Button
}

// Any reports whether at least one navigation control is present
func (c Controls) Any() bool {
	return c.Submit != nil || c.Review != nil || c.Next != nil
}

// FindControls picks the navigation buttons out of the modal's buttons
func FindControls(buttons []ui.Button) Controls {
	var c Controls
	for i := range buttons {
		b := &buttons[i]
		switch RoleOf(*b) {
		case RoleSubmit:
			if c.Submit == nil {
				c.Submit = b
			}
		case RoleReview:
			if c.Review == nil {
				c.Review = b
			}
		case RoleNext:
			if c.Next == nil {
				c.Next = b
			}
		}
	}
	return c
}

// Detector runs the priority-ordered state checks
type Detector struct {
	inspector ui.Inspector
	fields    TextFieldFinder
}

// NewDetector creates a Detector. fields may be nil, in which case the
// text-field check is skipped.
func NewDetector(inspector ui.Inspector, fields TextFieldFinder) *Detector {
	return &Detector{inspector: inspector, fields: fields}
}

// Detect returns the current state. When the UI cannot be inspected the state
// is StateError and the inspection error is returned alongside it.
func (d *Detector) Detect(ctx context.Context) (types.ApplicationState, error) {
	success, err := d.inspector.SuccessVisible(ctx)
	if err != nil {
		return types.StateError, fmt.Errorf("failed to check success message: %w", err)
	}
	if success {
		return types.StateSubmitted, nil
	}

	modal, err := d.inspector.ModalVisible(ctx)
	if err != nil {
		return types.StateError, fmt.Errorf("failed to check modal: %w", err)
	}
	if !modal {
		entry, err := d.inspector.EntryPointVisible(ctx)
		if err != nil {
			return types.StateError, fmt.Errorf("failed to check entry point: %w", err)
		}
		if entry {
			return types.StateJobPage, nil
		}
		return types.StateError, nil
	}

	buttons, err := d.inspector.Buttons(ctx)
	if err != nil {
		return types.StateError, fmt.Errorf("failed to read modal buttons: %w", err)
	}
	if state, ok := fromControls(FindControls(buttons)); ok {
		return state, nil
	}

	if d.fields != nil {
		n, err := d.fields.TextFieldCount(ctx)
		if err != nil {
			return types.StateError, fmt.Errorf("failed to count text fields: %w", err)
		}
		if n > 0 {
			return types.StateModalTextFieldDetected, nil
		}
	}
	return types.StateModalOpen, nil
}

// Detect runs the checks with the default perception skip lists
func Detect(ctx context.Context, inspector ui.Inspector) (types.ApplicationState, error) {
	return NewDetector(inspector, perception.New(inspector, perception.Options{}, nil)).Detect(ctx)
}

func fromControls(c Controls) (types.ApplicationState, bool) {
	switch {
	case c.Submit != nil && (c.Next != nil || c.Review != nil):
		return types.StateModalReviewStep, true
	case c.Submit != nil:
		return types.StateModalSingleStep, true
	case c.Review != nil:
		return types.StateModalReviewStep, true
	case c.Next != nil:
		return types.StateModalFormStep, true
	}
	return "", false
}
