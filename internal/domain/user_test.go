package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("LowercasesValue", func(t *testing.T) {
		e, err := NewEmail("Maria.Silva@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "maria.silva@example.com", e.Value())
	})

	t.Run("RejectsMalformed", func(t *testing.T) {
		for _, raw := range []string{"", "no-at-sign", "a@b", "a b@c.com", "a@b c.com"} {
			_, err := NewEmail(raw)
			assert.Error(t, err, "expected %q to be rejected", raw)
		}
	})
}

func TestNewUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		u, err := NewUser("user-1", "Maria", "maria@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID())
		assert.Equal(t, "Maria", u.Name())
		assert.Equal(t, "maria@example.com", u.Email())
		assert.WithinDuration(t, time.Now(), u.CreatedAt(), time.Second)
	})

	t.Run("NameTooShort", func(t *testing.T) {
		_, err := NewUser("user-1", "M", "maria@example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		_, err := NewUser("user-1", "Maria", "not-an-email")
		assert.Error(t, err)
	})
}

func TestReconstituteUser(t *testing.T) {
	createdAt := time.Date(2023, 7, 15, 9, 30, 0, 0, time.UTC)
	u, err := ReconstituteUser("user-2", "João", "JOAO@example.com", createdAt)
	require.NoError(t, err)
	assert.Equal(t, "joao@example.com", u.Email())
	assert.Equal(t, createdAt, u.CreatedAt())
}
