package contract

import (
	"errors"
	"fmt"
)

// Sentinel errors for module operations. Every user-visible failure wraps
// exactly one of these together with a short, stable reason string so
// callers and tests can assert on the rejection cause.
var (
	// ErrInvalidInput is returned for zero addresses, empty ids and
	// non-positive amounts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when the caller lacks the required role.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for unregistered modules and unknown proposals.
	ErrNotFound = errors.New("not found")

	// ErrStateConflict is returned when a transition is not legal from the
	// current state: vote not passed, already processed, duplicate vote.
	ErrStateConflict = errors.New("state conflict")

	// ErrReservedAddress is returned when an applicant collides with one of
	// the bank's bookkeeping addresses.
	ErrReservedAddress = errors.New("reserved address")
)

func invalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

func unauthorized(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, reason)
}

func notFound(reason string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, reason)
}

func stateConflict(reason string) error {
	return fmt.Errorf("%w: %s", ErrStateConflict, reason)
}

func reservedAddress(reason string) error {
	return fmt.Errorf("%w: %s", ErrReservedAddress, reason)
}
