package errors

import (
	"errors"
	"fmt"
)

// Common error types for the travel booking server
var (
	// Listing errors
	ErrListingNotFound = errors.New("listing not found")
	ErrNotListingOwner = errors.New("not the listing owner")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("not the booking owner")
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// Input errors
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidInput    = errors.New("invalid input")

	// General errors
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrInternal  = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
