package rangetree

import "github.com/cockroachdb/errors"

// Lookup errors
var (
	// ErrNotFound indicates that the requested key is not in the tree.
	ErrNotFound = errors.New("key not found")

	// ErrEmpty indicates that the tree, or the requested key range, holds no keys.
	ErrEmpty = errors.New("empty")

	// ErrNoSuccessor indicates that the key is the largest key in the tree.
	ErrNoSuccessor = errors.New("key has no successor")
)

// Query errors
var (
	// ErrInvalidRange indicates a range whose low bound is greater than its high bound.
	ErrInvalidRange = errors.New("invalid range: low > high")

	// ErrOutOfRange indicates an in-order index outside [0, Len()).
	ErrOutOfRange = errors.New("index out of range")
)

// IsInvariantViolation reports whether err was produced by a failed internal
// consistency check. Such errors are never expected in normal operation.
func IsInvariantViolation(err error) bool {
	return errors.IsAssertionFailure(err)
}
