package browser

import "fmt"

// SessionError represents a failure to drive or inspect the browser
type SessionError struct {
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("browser error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("browser error: %s", e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}
