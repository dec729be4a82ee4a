package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("Ana Cruz", "ana@example.com", "s3cret-pass", RoleManager)

		require.NoError(t, err)
		assert.Equal(t, "Ana Cruz", user.Name)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, RoleManager, user.Role)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong-pass"))
	})

	t.Run("defaults role to supervisor", func(t *testing.T) {
		user, err := NewUser("Ben", "ben@example.com", "s3cret-pass", "")

		require.NoError(t, err)
		assert.Equal(t, RoleSupervisor, user.Role)
	})

	t.Run("normalizes email to lower case", func(t *testing.T) {
		user, err := NewUser("Ana", "Ana@Example.COM", "s3cret-pass", RoleViewer)

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		user, err := NewUser("Ana", "ana@example.com", "s3cret-pass", Role("superuser"))

		require.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "Unknown role")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("Ana", "not-an-email", "s3cret-pass", RoleViewer)
		require.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("Ana", "ana@example.com", "short", RoleViewer)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser("Ana", "ana@example.com", "first-pass", RoleViewer)
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("second-pass"))

	assert.False(t, user.VerifyPassword("first-pass"))
	assert.True(t, user.VerifyPassword("second-pass"))
}

func TestUser_SetRole(t *testing.T) {
	user, err := NewUser("Ana", "ana@example.com", "s3cret-pass", RoleViewer)
	require.NoError(t, err)

	require.NoError(t, user.SetRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, user.Role)

	err = user.SetRole(Role("root"))
	require.Error(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser("Ana", "ana@example.com", "s3cret-pass", RoleViewer)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	at := time.Now()
	user.RecordLogin(at)

	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, at, *user.LastLoginAt)
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleOwner, RoleManager, RoleSupervisor, RoleAccountant, RoleViewer} {
		assert.True(t, ValidRole(r), string(r))
	}
	assert.False(t, ValidRole(Role("root")))
	assert.False(t, ValidRole(Role("")))
}
