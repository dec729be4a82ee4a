package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/inventory"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockRecordRepository creates a GormStockRecordRepository over a
// mocked postgres connection, for asserting the exact SQL shape the ledger
// emits. The no-lost-update guarantee rests on each delta being a single
// statement, so the statement shape is the contract under test.
func newMockStockRecordRepository(t *testing.T) (*GormStockRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockRecordRepository(gormDB), mock, mockDB
}

func TestApplyDelta_PositiveDeltaIsSingleUpsert(t *testing.T) {
	repo, mock, mockDB := newMockStockRecordRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`INSERT INTO "stock_records" .* ON CONFLICT \("product_id","location"\) DO UPDATE SET .*"quantity"=stock_records\.quantity \+ \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.ApplyDelta(context.Background(), 1, "Main Warehouse", decimal.NewFromInt(10))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyDelta_NegativeDeltaIsSingleGuardedUpdate(t *testing.T) {
	t.Run("decrements in one statement", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "stock_records" SET .*"quantity"=quantity \+ \$\d+.* WHERE product_id = \$\d+ AND location = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyDelta(context.Background(), 1, "Main Warehouse", decimal.NewFromInt(-3))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means no such record", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "stock_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ApplyDelta(context.Background(), 1, "Main Warehouse", decimal.NewFromInt(-3))

		assert.ErrorIs(t, err, inventory.ErrNoSuchStockRecord)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
