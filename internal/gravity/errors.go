package gravity

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every input rejection returned from this package.
var ErrValidation = errors.New("gravity: invalid input")

// ValidationError describes a rejected body spec or step parameter.
type ValidationError struct {
	// Index is the body position in the submitted list, or -1 when the
	// error is not tied to a body.
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("gravity: body %d: %s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("gravity: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
