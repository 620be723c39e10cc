// Package backtraderr defines the sentinel error values used across the
// backtrade module. Constructors and mutators wrap one of these with
// fmt.Errorf("...: %w", ...) so callers can test the failure category with
// errors.Is, independent of the message text.
package backtraderr

import "errors"

var (
	// ErrTypeMismatch is returned where a dynamic-typing-era check from the
	// original implementation still has a meaningful Go analogue, e.g. a
	// Code-or-Asset union argument or an externally supplied validator func.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDomainViolation is returned when a value is of the right type but
	// fails a domain rule (negative rate, out-of-range slippage, ...).
	ErrDomainViolation = errors.New("domain violation")

	// ErrNameConflict is returned when a code is already registered to a
	// different object.
	ErrNameConflict = errors.New("name already registered")

	// ErrMissingResource is returned when a lookup (fx pair, asset code)
	// finds nothing registered under that name.
	ErrMissingResource = errors.New("resource not found")

	// ErrLifecycleViolation is returned when an operation is attempted out
	// of order, e.g. processing an event twice.
	ErrLifecycleViolation = errors.New("lifecycle violation")
)
