package production

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// ProductionLog records one production run: what was produced, how much,
// and by whom. The produced quantity is credited to stock at the output
// location when the log is created.
type ProductionLog struct {
	shared.BaseEntity
	ProductID        int64           `gorm:"not null;index"`
	BatchNumber      string          `gorm:"size:100;not null;index"`
	QuantityProduced decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OutputLocation   string          `gorm:"size:100;not null"`
	SupervisorID     int64           `gorm:"not null;index"`
	ProductionDate   time.Time       `gorm:"not null;index"`
	Notes            string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductionLog) TableName() string {
	return "production_logs"
}

// NewProductionLog creates a production log entry. The supervisor is the
// authenticated user recording the run, not a free-form field.
func NewProductionLog(productID int64, batchNumber string, quantity decimal.Decimal, outputLocation string, supervisorID int64, productionDate time.Time, notes string) (*ProductionLog, error) {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number is required")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Produced quantity must be positive")
	}
	if productionDate.IsZero() {
		productionDate = time.Now()
	}

	return &ProductionLog{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		BatchNumber:      batchNumber,
		QuantityProduced: quantity,
		OutputLocation:   strings.TrimSpace(outputLocation),
		SupervisorID:     supervisorID,
		ProductionDate:   productionDate,
		Notes:            notes,
	}, nil
}

// Update changes the descriptive fields of the log. The produced quantity is
// immutable after creation because it has already been posted to stock.
func (l *ProductionLog) Update(batchNumber string, productionDate time.Time, notes string) error {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number is required")
	}

	l.BatchNumber = batchNumber
	if !productionDate.IsZero() {
		l.ProductionDate = productionDate
	}
	l.Notes = notes
	l.Touch()
	return nil
}
