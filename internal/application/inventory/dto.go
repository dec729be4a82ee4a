package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecordInput contains the attributes for manually creating or
// adjusting a stock record
type StockRecordInput struct {
	ProductID        int64
	Location         string
	Quantity         decimal.Decimal
	MinimumThreshold decimal.Decimal
}

// AdjustStockInput contains the input for a direct ledger adjustment
type AdjustStockInput struct {
	ProductID int64
	Location  string
	Delta     decimal.Decimal
}

// CreateWithdrawalInput contains the input for requesting a withdrawal
type CreateWithdrawalInput struct {
	StockRecordID int64
	Quantity      decimal.Decimal
	RequestedBy   int64
	BatchID       *int64
	Purpose       string
}

// WithdrawalView is the withdrawal representation returned to clients
type WithdrawalView struct {
	ID                int64           `json:"id"`
	StockRecordID     int64           `json:"stock_record_id"`
	ProductID         int64           `json:"product_id"`
	Location          string          `json:"location"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	RequestedBy       int64           `json:"requested_by"`
	BatchID           *int64          `json:"batch_id,omitempty"`
	Purpose           string          `json:"purpose,omitempty"`
	Status            string          `json:"status"`
	RequestedAt       time.Time       `json:"requested_at"`
	ApprovedBy        *int64          `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time      `json:"approved_at,omitempty"`
	RejectionReason   string          `json:"rejection_reason,omitempty"`
}
