package resolve

import (
	"github.com/jonathan/easy-apply/internal/textmatch"
	"github.com/jonathan/easy-apply/internal/types"
)

// Matched keys reported for standard checkboxes
const (
	KeyConsent       = "consent"
	KeyCommunication = "communication_opt_in"
	KeyUnclassified  = "unclassified_checkbox"
)

var (
	consentTerms       = []string{"agree", "consent", "terms", "acknowledge", "confirm", "certify"}
	communicationTerms = []string{
		"follow", "updates", "newsletter", "marketing", "promotional", "job alerts",
		"text messages", "sms", "subscribe", "notify",
	}
)

// Checkbox resolves a checkbox group. Radio-equivalent groups share the radio
// logic; standard boxes are decided from their label.
func (r *Resolver) Checkbox(g types.CheckboxGroup) types.Resolution {
	if g.Kind == types.CheckboxRadioEquivalent {
		return r.Radio(g.AsRadioGroup(""))
	}

	label := textmatch.Normalize(g.Label)
	switch {
	case textmatch.AnyTerm(label, communicationTerms...):
		return types.CheckResolution(false, KeyCommunication)
	case textmatch.AnyTerm(label, consentTerms...):
		return types.CheckResolution(true, KeyConsent)
	}

	switch r.unknownCheckbox {
	case LeaveUnknown:
		return types.CheckResolution(false, KeyUnclassified)
	case ViolateUnknown:
		return unresolvedKey(KeyUnclassified, KeyUnclassified)
	}
	return types.CheckResolution(true, KeyUnclassified)
}
