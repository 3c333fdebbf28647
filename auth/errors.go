package auth

import (
	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/pkg/errors"
)

// Message converts a platform error into the fixed sentence shown inline on
// the form. Unrecognised errors fall back to a generic sentence; raw platform
// errors are never rendered.
func Message(err error) string {
	switch {
	case errors.Is(err, platform.ErrEmailInUse):
		return "An account with this email already exists."
	case errors.Is(err, platform.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, platform.ErrWeakPassword):
		return "Password must be at least 6 characters."
	case errors.Is(err, platform.ErrWrongCredentials), errors.Is(err, platform.ErrUserNotFound):
		return "Invalid email or password."
	case errors.Is(err, platform.ErrPermissionDenied):
		return "You do not have permission to perform this action."
	case errors.Is(err, platform.ErrUnavailable):
		return "Service temporarily unavailable. Please try again."
	case errors.Is(err, platform.ErrRateLimited):
		return "Too many attempts. Please wait a moment and try again."
	case errors.Is(err, platform.ErrNetwork):
		return "Network error. Please check your connection and try again."
	}

	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe.First()
	}
	return "An unexpected error occurred. Please try again."
}
