package auth_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-travel-booking/auth"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	t.Run("letters and spaces within bounds pass", func(t *testing.T) {
		for _, s := range []string{"Jo", "Mary Jane", "Abdul Rahman Khan", strings.Repeat("a", 50)} {
			require.Empty(t, auth.ValidateName(s), s)
		}
	})

	t.Run("empty gets the required message", func(t *testing.T) {
		require.Equal(t, "Name is required.", auth.ValidateName(""))
	})

	t.Run("everything else fails with a non-empty message", func(t *testing.T) {
		for _, s := range []string{"A", "O'Brien", "José", "Jane2", strings.Repeat("a", 51), " leading-dash-"} {
			require.NotEmpty(t, auth.ValidateName(s), s)
		}
	})
}

func TestValidatePhone(t *testing.T) {
	t.Run("10-15 digits pass", func(t *testing.T) {
		for _, s := range []string{"9876543210", "123456789012345", "0123456789"} {
			require.Empty(t, auth.ValidatePhone(s, false), s)
		}
	})

	t.Run("mobile prefix rule requires leading 6-9", func(t *testing.T) {
		require.Empty(t, auth.ValidatePhone("6123456789", true))
		require.Empty(t, auth.ValidatePhone("9876543210", true))
		require.NotEmpty(t, auth.ValidatePhone("0123456789", true))
		require.NotEmpty(t, auth.ValidatePhone("5123456789", true))
	})

	t.Run("bad shapes fail", func(t *testing.T) {
		for _, s := range []string{"", "123", "1234567890123456", "98765abc10", "+919876543210"} {
			require.NotEmpty(t, auth.ValidatePhone(s, false), s)
		}
	})
}

func TestValidateEmail(t *testing.T) {
	t.Run("one at-sign with a dot after passes", func(t *testing.T) {
		for _, s := range []string{"a@b.com", "first.last@sub.domain.org"} {
			require.Empty(t, auth.ValidateEmail(s), s)
		}
	})

	t.Run("missing at or following dot fails", func(t *testing.T) {
		for _, s := range []string{"", "plain", "a@b", "a.b@c", "a@@b.com", "dot.before@nodot"} {
			require.NotEmpty(t, auth.ValidateEmail(s), s)
		}
	})
}

func TestValidatePasswords(t *testing.T) {
	require.Empty(t, auth.ValidatePasswords("secret1", "secret1"))
	require.Equal(t, "Password is required.", auth.ValidatePasswords("", ""))
	require.Equal(t, "Passwords do not match.", auth.ValidatePasswords("secret1", "secret2"))
}
