package refio

import (
	"errors"
	"fmt"
)

// Common reference I/O errors
var (
	// ErrReferenceUnreadable is returned when the master reference
	// workbook is missing, unreadable, or lacks a required sheet.
	ErrReferenceUnreadable = errors.New("master reference workbook unreadable")

	// ErrEmptyReferenceSave is returned when a save would write an
	// empty customer or price table. Refusing the save guards against
	// silently truncating the reference after a partial load.
	ErrEmptyReferenceSave = errors.New("refusing to save empty reference table")

	// ErrUploadUnreadable is returned when a customer-list upload
	// cannot be parsed.
	ErrUploadUnreadable = errors.New("customer list upload unreadable")
)

// SheetError wraps a failure tied to a specific sheet of a workbook.
type SheetError struct {
	Path  string
	Sheet string
	Err   error
}

// Error implements the error interface.
func (e *SheetError) Error() string {
	return fmt.Sprintf("refio: sheet %q of %s: %v", e.Sheet, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SheetError) Unwrap() error {
	return e.Err
}
