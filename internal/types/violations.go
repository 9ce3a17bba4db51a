package types

import (
	"fmt"
	"time"
)

// ViolationReason is the structured reason a job could not proceed automatically
type ViolationReason string

// Violation reasons
const (
	ReasonUnresolvedField  ViolationReason = "unresolved_field"
	ReasonLowConfidence    ViolationReason = "low_confidence"
	ReasonValidationError  ViolationReason = "validation_error"
	ReasonDisabledButton   ViolationReason = "disabled_button"
	ReasonUnexpectedState  ViolationReason = "unexpected_state"
	ReasonModalNotDetected ViolationReason = "modal_not_detected"
	ReasonNoFormElements   ViolationReason = "no_form_elements"
	ReasonAlreadyApplied   ViolationReason = "already_applied"
)

// FieldContext describes the field a violation is about
type FieldContext struct {
	Type           string     `json:"field_type"`
	Question       string     `json:"question"`
	Options        []string   `json:"options,omitempty"`
	Classification string     `json:"classification,omitempty"`
	MatchedKey     string     `json:"matched_key,omitempty"`
	Confidence     Confidence `json:"confidence,omitempty"`
}

// Violation represents a field or step that could not be safely handled
type Violation struct {
	Reason  ViolationReason `json:"reason"`
	Field   *FieldContext   `json:"field,omitempty"`
	Details string          `json:"details"`
	State   string          `json:"state,omitempty"`
}

func (v Violation) String() string {
	if v.Field != nil && v.Field.Question != "" {
		return fmt.Sprintf("%s: %s (%s)", v.Reason, v.Details, v.Field.Question)
	}
	return fmt.Sprintf("%s: %s", v.Reason, v.Details)
}

// JobResult is the batch-summary row for one job
type JobResult struct {
	JobID              string           `json:"job_id"`
	URL                string           `json:"url"`
	Outcome            Outcome          `json:"result"`
	SkipReason         ViolationReason  `json:"skip_reason,omitempty"`
	Details            string           `json:"details,omitempty"`
	StateAtExit        ApplicationState `json:"state_at_exit"`
	Elapsed            time.Duration    `json:"-"`
	FieldsResolved     int              `json:"fields_resolved_count"`
	FieldsUnresolved   int              `json:"fields_unresolved_count"`
	ConfidenceFloorHit bool             `json:"confidence_floor_hit"`
	Violations         []Violation      `json:"violations,omitempty"`
}

// ElapsedSeconds returns the job duration in seconds
func (r JobResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}
