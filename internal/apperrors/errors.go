// Package apperrors defines the error taxonomy shared by the service and
// storage layers. Callers add context with fmt.Errorf("...: %w", err) and
// inspect it with errors.Is.
//
// "Not found" is deliberately absent from the service/storage contract:
// lookups return a found flag and mutations return storage.NotFound.
// ErrNotFound exists only for presentation code that wants to render it.
package apperrors

import "errors"

var (
	// ErrInvalidArgument: a caller-supplied identifier is not positive, or
	// a required field is empty. Raised before any store access.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidFormat: a date of birth is not a YYYY-MM-DD calendar date.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrStoreUnavailable: no live database connection could be obtained.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreOperationFailed: the database rejected or failed a statement.
	ErrStoreOperationFailed = errors.New("store operation failed")

	// ErrNotFound is used by the presentation layer only.
	ErrNotFound = errors.New("not found")
)

// IsValidation reports whether err was raised by input validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrInvalidFormat)
}
