package answers

import "fmt"

// LoadError represents a failure to read, parse or validate an answer store
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("answer store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("answer store error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
