package eventlog

import "fmt"

// WriteError represents a failure to persist log or summary output
type WriteError struct {
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
