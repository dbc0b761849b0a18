// Package errors provides standardized domain errors that express intent
// rather than infrastructure details. Vault errors wrap these sentinels so callers
// can branch on the broad category with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// Category sentinels. Domain packages wrap one of these rather than defining unrelated roots.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the supplied secret could not be verified.
	ErrUnauthorized = errors.New("unauthorized")
)

// New returns a plain error. Prefer wrapping a sentinel when the caller may branch on it.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message and keeps it reachable through Is and As.
// A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether err, or anything it wraps, is target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As stores the first error in err's chain assignable to target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
