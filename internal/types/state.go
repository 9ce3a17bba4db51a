package types

// ApplicationState is the detector's view of the live UI
type ApplicationState string

// Application states
const (
	StateJobPage                ApplicationState = "JOB_PAGE"
	StateModalOpen              ApplicationState = "MODAL_OPEN"
	StateModalTextFieldDetected ApplicationState = "MODAL_TEXT_FIELD_DETECTED"
	StateModalSingleStep        ApplicationState = "MODAL_SINGLE_STEP"
	StateModalFormStep          ApplicationState = "MODAL_FORM_STEP"
	StateModalReviewStep        ApplicationState = "MODAL_REVIEW_STEP"
	StateSubmitted              ApplicationState = "SUBMITTED"
	StateError                  ApplicationState = "ERROR"
)

// InModal reports whether the state describes an open application modal
func (s ApplicationState) InModal() bool {
	switch s {
	case StateModalOpen, StateModalTextFieldDetected, StateModalSingleStep,
		StateModalFormStep, StateModalReviewStep:
		return true
	}
	return false
}

// Outcome is the terminal result of one job
type Outcome string

// Terminal outcomes
const (
	OutcomeSubmitted  Outcome = "submitted"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
	OutcomeTestPassed Outcome = "test_passed"
)
