package feed

import (
	"errors"
	"fmt"
)

// Common feed errors
var (
	// ErrNoInvoiceFound is returned when no raw invoice feed matching
	// the supplier pattern exists in the input directory. The run
	// cannot proceed without one.
	ErrNoInvoiceFound = errors.New("no raw invoice found in input directory")

	// ErrNoUploadFound is returned when the input directory holds no
	// customer-list upload. The reference-update step treats this as
	// "nothing to merge", not a failure.
	ErrNoUploadFound = errors.New("no customer list upload found in input directory")

	// ErrMonthNotFound is returned when the invoice filename carries no
	// recognizable month name and 4-digit year.
	ErrMonthNotFound = errors.New("invoice filename has no month/year token")
)

// ParseError describes a malformed row of the raw invoice feed.
type ParseError struct {
	Path  string
	Row   int // 1-based row number including the header
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("feed: %s row %d field %s: %v", e.Path, e.Row, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
