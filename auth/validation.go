package auth

import (
	"regexp"
	"strings"
)

// Field validators return an empty string when the value is acceptable and a
// user-facing message otherwise. They are pure and safe to call on every
// keystroke; nothing here touches the platform.

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)
	digitRe = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// ValidateName accepts letters and spaces only, length 2-50.
func ValidateName(value string) string {
	if value == "" {
		return "Name is required."
	}
	if !nameRe.MatchString(value) {
		return "Name must be 2-50 characters, letters and spaces only."
	}
	return ""
}

// ValidatePhone accepts 10-15 digits. With requireMobilePrefix set, the first
// digit must be 6-9 (Indian mobile numbering).
func ValidatePhone(value string, requireMobilePrefix bool) string {
	if value == "" {
		return "Phone number is required."
	}
	if !digitRe.MatchString(value) {
		return "Phone number must be 10-15 digits."
	}
	if requireMobilePrefix && (value[0] < '6' || value[0] > '9') {
		return "Phone number must start with a digit between 6 and 9."
	}
	return ""
}

// ValidateEmail is a shape check, not full RFC validation: exactly one "@"
// with at least one "." somewhere after it.
func ValidateEmail(value string) string {
	if value == "" {
		return "Email is required."
	}
	if strings.Count(value, "@") != 1 {
		return "Please enter a valid email address."
	}
	domain := value[strings.Index(value, "@")+1:]
	if !strings.Contains(domain, ".") {
		return "Please enter a valid email address."
	}
	return ""
}

// ValidatePasswords checks presence and confirmation match. Strength policy
// is the platform's; enforcing a stricter local rule would reject passwords
// the platform accepts.
func ValidatePasswords(password, confirm string) string {
	if password == "" {
		return "Password is required."
	}
	if password != confirm {
		return "Passwords do not match."
	}
	return ""
}

// FieldErrors maps form field names to inline validation messages. It is
// returned before any platform call is made.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// First returns one message for surfaces that show a single error line.
func (fe FieldErrors) First() string {
	for _, msg := range fe {
		return msg
	}
	return ""
}
