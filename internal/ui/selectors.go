package ui

import "regexp"

// CSS selectors shared by the page implementations
const (
	ModalSelector             = `[role="dialog"], .jobs-easy-apply-modal, .artdeco-modal`
	EntryPointSelector        = `[aria-label*="Easy Apply"], button.jobs-apply-button`
	ValidationBannerSelector  = `.artdeco-inline-feedback--error, [role="alert"], .error-message`
	InlineErrorSelector       = `.error-message, .field-error`
	CheckboxContainerSelector = `fieldset, [role="group"], .fb-form-element, .form-group`
)

// SuccessPhrases mark a submitted application
var SuccessPhrases = []string{"Application sent", "Your application was sent"}

// AppliedPattern matches the job page badge shown after a previous application
var AppliedPattern = regexp.MustCompile(`^Applied\b`)

// DefaultInlineError is reported when a field is marked invalid without any message text
const DefaultInlineError = "Validation error (no error text found)"

// DefaultCheckboxGroup is the group key for checkboxes outside any container
const DefaultCheckboxGroup = "default"
