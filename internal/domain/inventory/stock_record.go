package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// DefaultLocation is used when a caller does not name a stock location
const DefaultLocation = "Main Warehouse"

// Inventory-specific domain errors
var (
	ErrNoSuchStockRecord = shared.NewDomainError("NO_SUCH_STOCK_RECORD",
		"No stock record exists for this product and location")
	ErrInvalidStateTransition = shared.NewDomainError("INVALID_STATE_TRANSITION",
		"Operation not allowed in the current state")
)

// StockRecord tracks the on-hand quantity of a product at one location.
// The unique key is (product_id, location). Quantity is the running sum of
// every delta applied since the record was created and is allowed to go
// negative; the low-stock report surfaces records at or below their
// minimum threshold.
type StockRecord struct {
	shared.BaseEntity
	ProductID        int64           `gorm:"not null;uniqueIndex:idx_stock_product_location,priority:1"`
	Location         string          `gorm:"size:200;not null;uniqueIndex:idx_stock_product_location,priority:2"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinimumThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// StockDetail is a stock record joined with its product attributes,
// used by list views so clients do not have to resolve product IDs
type StockDetail struct {
	StockRecord
	ProductName string `gorm:"column:product_name" json:"product_name"`
	ProductUnit string `gorm:"column:product_unit" json:"product_unit"`
}

// NewStockRecord creates a stock record for a product-location pair
func NewStockRecord(productID int64, location string, quantity, minimumThreshold decimal.Decimal) (*StockRecord, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = DefaultLocation
	}
	if minimumThreshold.IsNegative() {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot be negative")
	}

	return &StockRecord{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		Location:         location,
		Quantity:         quantity,
		MinimumThreshold: minimumThreshold,
	}, nil
}

// IsLowStock reports whether the quantity is at or below the minimum threshold
func (r *StockRecord) IsLowStock() bool {
	return r.Quantity.LessThanOrEqual(r.MinimumThreshold)
}

// SetMinimumThreshold sets the low-stock alert level
func (r *StockRecord) SetMinimumThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot be negative")
	}
	r.MinimumThreshold = threshold
	r.Touch()
	return nil
}
