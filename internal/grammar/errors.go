package grammar

import "fmt"

// APICallError represents a failed call to the grammar service
type APICallError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("grammar API call failed: %s: %v", e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("grammar API call failed: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("grammar API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the grammar service response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
