package dictionary

import (
	"fmt"
)

// ErrSourceFailure occurs when a dictionary source fails while streaming
// key→parent pairs.
type ErrSourceFailure struct {
	error
}

// NewSourceFailureErr constructs a new source failure error.
func NewSourceFailureErr(baseErr error) error {
	return ErrSourceFailure{
		error: fmt.Errorf("error loading dictionary source: %w", baseErr),
	}
}

// Unwrap returns the inner, wrapped error.
func (err ErrSourceFailure) Unwrap() error {
	return err.error
}
