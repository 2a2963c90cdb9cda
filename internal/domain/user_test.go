package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates a valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("Ada@Example.com", "Ada", "a-long-enough-password")
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "Ada", user.DisplayName)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("not-an-email", "Ada", "a-long-enough-password")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("ada@example.com", "Ada", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects over-length password", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("ada@example.com", "Ada", strings.Repeat("x", 73))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})

	t.Run("loaded user needs only a hash", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("ada@example.com", "Ada", "a-long-enough-password")
		require.NoError(t, err)

		user.Password = ""
		assert.ErrorIs(t, user.Validate(), ErrEmptyHashedPassword)

		user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
		assert.NoError(t, user.Validate())
	})
}
