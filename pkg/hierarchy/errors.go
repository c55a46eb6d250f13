package hierarchy

import (
	"errors"
	"fmt"
)

// ErrNoHierarchy occurs when the dictionary backend carries no hierarchical
// structure. It is raised before any traversal is attempted and is a
// property of dictionary configuration, not a transient fault.
type ErrNoHierarchy struct {
	error
}

// NewNoHierarchyErr constructs a new no-hierarchy error.
func NewNoHierarchyErr() error {
	return ErrNoHierarchy{
		error: errors.New("dictionary does not have a hierarchy"),
	}
}

// ErrShapeMismatch occurs when two vector operands of an ancestry test do
// not agree on row count. This is a contract violation in the caller.
type ErrShapeMismatch struct {
	error
}

// NewShapeMismatchErr constructs a new shape mismatch error.
func NewShapeMismatchErr(childRows, ancestorRows int) error {
	return ErrShapeMismatch{
		error: fmt.Errorf("operand row counts differ: child has %d rows, ancestor has %d", childRows, ancestorRows),
	}
}

// ErrLookupFailure occurs when the dictionary backend fails while resolving
// parents or testing ancestry.
type ErrLookupFailure struct {
	error
}

// NewLookupFailureErr constructs a new lookup failure error.
func NewLookupFailureErr(baseErr error) error {
	return ErrLookupFailure{
		error: fmt.Errorf("error resolving hierarchy: %w", baseErr),
	}
}

// Unwrap returns the inner, wrapped error.
func (err ErrLookupFailure) Unwrap() error {
	return err.error
}
