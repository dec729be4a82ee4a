package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/identity"
	"github.com/tsaci/backend/internal/domain/shared"
)

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	user, err := identity.NewUser("Ana Reyes", "Ana@Tsaci.com", "supervisor-pass", identity.RoleSupervisor)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))
	require.NotZero(t, user.ID)

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ANA@tsaci.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("reports existing email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "ana@tsaci.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@tsaci.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("filters by role", func(t *testing.T) {
		admin, err := identity.NewUser("Root", "root@tsaci.com", "admin-password", identity.RoleAdmin)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, admin))

		users, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{"role": identity.RoleAdmin}})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "root@tsaci.com", users[0].Email)
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByEmail(ctx, "ghost@tsaci.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deletes user", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, user.ID))
		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
