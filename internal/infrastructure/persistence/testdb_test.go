package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/audit"
	"github.com/tsaci/backend/internal/domain/catalog"
	"github.com/tsaci/backend/internal/domain/finance"
	"github.com/tsaci/backend/internal/domain/identity"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/partner"
	"github.com/tsaci/backend/internal/domain/production"
	"github.com/tsaci/backend/internal/domain/settings"
	"github.com/tsaci/backend/internal/domain/trade"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&catalog.Product{},
		&partner.Customer{},
		&partner.Supplier{},
		&inventory.StockRecord{},
		&inventory.Withdrawal{},
		&production.ProductionLog{},
		&production.Batch{},
		&production.BatchAssignment{},
		&audit.Log{},
		&settings.Setting{},
		&trade.Sale{},
		&finance.Expense{},
	))

	return db
}
