package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/audit"
	"github.com/tsaci/backend/internal/domain/identity"
	"gorm.io/gorm"
)

func seedAuditTrail(t *testing.T, db *gorm.DB) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	repo := NewGormAuditLogRepository(db)

	alice, err := identity.NewUser("Alice Yilmaz", "alice@plant.local", "secret-pass-1", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, db.Create(alice).Error)
	bob, err := identity.NewUser("Bob Arslan", "bob@plant.local", "secret-pass-2", identity.RoleManager)
	require.NoError(t, err)
	require.NoError(t, db.Create(bob).Error)

	entries := []struct {
		userID *int64
		action audit.Action
		entity string
	}{
		{&alice.ID, audit.ActionCreate, "products"},
		{&alice.ID, audit.ActionUpdate, "products"},
		{&bob.ID, audit.ActionDelete, "suppliers"},
		{&bob.ID, audit.ActionLogin, "auth"},
		{nil, audit.ActionLogin, "auth"},
	}
	for _, e := range entries {
		log, err := audit.NewLog(e.userID, e.action, e.entity, nil, "", "10.0.0.1")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, log))
	}
	return alice.ID, bob.ID
}

func TestGormAuditLogRepository_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("joins user and returns newest first", func(t *testing.T) {
		db := newTestDB(t)
		aliceID, _ := seedAuditTrail(t, db)
		repo := NewGormAuditLogRepository(db)

		entries, err := repo.FindAll(ctx, audit.Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 5)

		// seeded last, listed first
		assert.Equal(t, audit.ActionLogin, entries[0].Action)
		assert.Empty(t, entries[0].UserName)

		byUser, err := repo.FindAll(ctx, audit.Filter{UserID: &aliceID})
		require.NoError(t, err)
		require.Len(t, byUser, 2)
		assert.Equal(t, "Alice Yilmaz", byUser[0].UserName)
		assert.Equal(t, "alice@plant.local", byUser[0].UserEmail)
	})

	t.Run("filters by entity type and action", func(t *testing.T) {
		db := newTestDB(t)
		seedAuditTrail(t, db)
		repo := NewGormAuditLogRepository(db)

		entries, err := repo.FindAll(ctx, audit.Filter{EntityType: "products"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		entries, err = repo.FindAll(ctx, audit.Filter{Action: audit.ActionLogin})
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		entries, err = repo.FindAll(ctx, audit.Filter{EntityType: "products", Action: audit.ActionDelete})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("respects the limit", func(t *testing.T) {
		db := newTestDB(t)
		seedAuditTrail(t, db)
		repo := NewGormAuditLogRepository(db)

		entries, err := repo.FindAll(ctx, audit.Filter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("bounds by date range", func(t *testing.T) {
		db := newTestDB(t)
		seedAuditTrail(t, db)
		repo := NewGormAuditLogRepository(db)

		entries, err := repo.FindAll(ctx, audit.Filter{From: time.Now().Add(time.Hour)})
		require.NoError(t, err)
		assert.Empty(t, entries)

		entries, err = repo.FindAll(ctx, audit.Filter{To: time.Now().Add(time.Hour)})
		require.NoError(t, err)
		assert.Len(t, entries, 5)
	})
}

func TestGormAuditLogRepository_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates the whole trail", func(t *testing.T) {
		db := newTestDB(t)
		seedAuditTrail(t, db)
		repo := NewGormAuditLogRepository(db)

		stats, err := repo.GetStats(ctx, time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, int64(5), stats.TotalEvents)
		assert.Equal(t, int64(2), stats.UniqueUsers)
		assert.Equal(t, int64(1), stats.Creates)
		assert.Equal(t, int64(1), stats.Updates)
		assert.Equal(t, int64(1), stats.Deletes)
		assert.Equal(t, int64(2), stats.Logins)
	})

	t.Run("respects date bounds", func(t *testing.T) {
		db := newTestDB(t)
		seedAuditTrail(t, db)
		repo := NewGormAuditLogRepository(db)

		stats, err := repo.GetStats(ctx, time.Now().Add(time.Hour), time.Time{})
		require.NoError(t, err)
		assert.Zero(t, stats.TotalEvents)
	})
}
