package refstore

import (
	"errors"
	"fmt"
)

// Common reference store errors
var (
	// ErrNotFound is returned when a keyed lookup has no matching
	// reference entry.
	ErrNotFound = errors.New("reference entry not found")

	// ErrValidationFailed is returned when one or more sanity checks
	// over the loaded reference failed. Individual failures are
	// collected in the error artifact, not in this error.
	ErrValidationFailed = errors.New("master reference failed sanity checks")
)

// LookupError describes a failed reference lookup with the key that
// missed and the table it missed in.
type LookupError struct {
	// Table is the reference table searched ("CustomerList" or "PriceSheet").
	Table string

	// Key is the value that had no match.
	Key string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("refstore: %q not found in %s", e.Key, e.Table)
}

// Unwrap lets callers match with errors.Is(err, ErrNotFound).
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

// NewLookupError creates a LookupError for the given table and key.
func NewLookupError(table, key string) *LookupError {
	return &LookupError{Table: table, Key: key}
}
