package circuit

import (
	"errors"
	"fmt"
)

// InvalidInputError reports malformed caller input to a builder or a
// structurally broken circuit.
type InvalidInputError struct {
	Field  string // input that was rejected ("qubits", "shots", "circuit")
	Reason string // human-readable description
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidInput returns true if the error is an InvalidInputError.
// Uses errors.As to handle wrapped errors.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
