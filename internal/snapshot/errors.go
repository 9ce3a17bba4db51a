package snapshot

import "fmt"

// PageError represents a failure to load or act on a snapshot page
type PageError struct {
	Message string
	Cause   error
}

func (e *PageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot error: %s", e.Message)
}

func (e *PageError) Unwrap() error {
	return e.Cause
}
