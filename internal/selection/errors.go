// Package selection chooses the technique set that best meets a viral-score target under budget,
// time and preservation constraints.
package selection

import "fmt"

// Error represents an error that occurs while configuring or running selection
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
