package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/easy-apply/internal/answers"
	"github.com/jonathan/easy-apply/internal/types"
)

func TestCheckbox_RadioEquivalentUsesRadioLogic(t *testing.T) {
	r := newResolver(values{"requires_sponsorship": answers.BoolValue(false)}, nil, Options{})

	res := r.Checkbox(types.NewRadioEquivalent("Do you need visa sponsorship?", []string{"Yes", "No"}))
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, types.ConfidenceHigh, res.Confidence)
	assert.Equal(t, "requires_sponsorship", res.MatchedKey)
}

func TestCheckbox_Standard(t *testing.T) {
	tests := []struct {
		name     string
		policy   UnknownCheckboxPolicy
		label    string
		resolved bool
		check    bool
		key      string
	}{
		{"consent", CheckUnknown, "I agree to the Terms of Service", true, true, KeyConsent},
		{"acknowledge", LeaveUnknown, "I acknowledge the privacy notice", true, true, KeyConsent},
		{"follow company", CheckUnknown, "Follow Acme to stay up to date with their page", true, false, KeyCommunication},
		{"marketing beats agree", CheckUnknown, "I agree to receive marketing emails", true, false, KeyCommunication},
		{"unknown checked by default", "", "Top choice", true, true, KeyUnclassified},
		{"unknown left", LeaveUnknown, "Top choice", true, false, KeyUnclassified},
		{"unknown violation", ViolateUnknown, "Top choice", false, false, KeyUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(nil, nil, Options{UnknownCheckbox: tt.policy})
			res := r.Checkbox(types.NewStandardCheckbox(tt.label))
			assert.Equal(t, tt.resolved, res.Resolved())
			assert.Equal(t, tt.check, res.Check)
			assert.Equal(t, tt.key, res.MatchedKey)
			assert.Equal(t, types.NoOption, res.Index)
		})
	}
}

func TestUnknownCheckboxPolicy_Valid(t *testing.T) {
	assert.True(t, CheckUnknown.Valid())
	assert.True(t, ViolateUnknown.Valid())
	assert.False(t, UnknownCheckboxPolicy("sometimes").Valid())
}
