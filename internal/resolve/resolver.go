// Package resolve decides, for each perceived field, whether a configured fact
// answers it. Every resolver is a pure function of the descriptor and the answer
// store; nothing is inferred and a missing key is always unresolved.
package resolve

import (
	"fmt"
	"time"

	"github.com/jonathan/easy-apply/internal/answers"
)

// UnknownCheckboxPolicy governs standard checkboxes that are neither consent nor
// communication opt-ins
type UnknownCheckboxPolicy string

// Unknown checkbox policies
const (
	// CheckUnknown checks the box so an unexplained required checkbox cannot block submission
	CheckUnknown UnknownCheckboxPolicy = "check"
	// LeaveUnknown leaves the box as it is
	LeaveUnknown UnknownCheckboxPolicy = "leave"
	// ViolateUnknown reports the box as unresolved
	ViolateUnknown UnknownCheckboxPolicy = "violation"
)

// Valid reports whether p is a known policy
func (p UnknownCheckboxPolicy) Valid() bool {
	switch p {
	case CheckUnknown, LeaveUnknown, ViolateUnknown:
		return true
	}
	return false
}

// Options configures a Resolver
type Options struct {
	UnknownCheckbox UnknownCheckboxPolicy
	// Now returns the current time for current-date fields. Defaults to time.Now.
	Now func() time.Time
}

// Resolver resolves fields against one immutable answer store
type Resolver struct {
	bank            answers.AnswerBank
	assertions      answers.UserAssertions
	unknownCheckbox UnknownCheckboxPolicy
	now             func() time.Time
}

// New creates a resolver over store
func New(store *answers.Store, opts Options) *Resolver {
	r := &Resolver{
		unknownCheckbox: opts.UnknownCheckbox,
		now:             opts.Now,
	}
	if store != nil {
		r.bank = store.Bank
		r.assertions = store.Assertions
	}
	if !r.unknownCheckbox.Valid() {
		r.unknownCheckbox = CheckUnknown
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Reason codes shared by several resolvers
const (
	ReasonUnmatched         = "unmatched"
	ReasonSkipCreative      = "skip_creative_field"
	ReasonUnknownField      = "unknown_field"
	ReasonNonNumeric        = "non_numeric_value"
	ReasonOptionNotMatched  = "option_not_matched"
	ReasonAmbiguousOption   = "ambiguous_option"
	ReasonAmbiguousQuestion = "ambiguous_question"
	ReasonNoYesNoMatch      = "no_binary_yes_no_match"
)

func notConfigured(key string) string {
	return fmt.Sprintf("%s_not_configured", key)
}

func wrongType(key string) string {
	return fmt.Sprintf("%s_wrong_type", key)
}
