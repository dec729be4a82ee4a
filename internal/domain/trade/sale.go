package trade

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

// ErrInvalidStateTransition is returned when a sale in a terminal state is
// asked to change status.
var ErrInvalidStateTransition = shared.NewDomainError("INVALID_STATE_TRANSITION", "Sale is not in a state that allows this transition")

// Sale records an outgoing shipment of a product to a customer. Completing a
// sale debits stock exactly once; cancelled and completed sales never change
// status again.
type Sale struct {
	shared.BaseEntity
	ProductID   int64           `gorm:"not null;index"`
	CustomerID  *int64          `gorm:"index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Location    string          `gorm:"size:100;not null"`
	Status      SaleStatus      `gorm:"size:20;not null;default:'pending';index"`
	SaleDate    time.Time       `gorm:"not null;index"`
	CompletedAt *time.Time
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a sale in the pending state
func NewSale(productID int64, customerID *int64, quantity, unitPrice decimal.Decimal, location string, saleDate time.Time, notes string) (*Sale, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Sale quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	return &Sale{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		CustomerID: customerID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Location:   location,
		Status:     SalePending,
		SaleDate:   saleDate,
		Notes:      notes,
	}, nil
}

// Total returns quantity * unit price
func (s *Sale) Total() decimal.Decimal {
	return s.Quantity.Mul(s.UnitPrice)
}

// IsTerminal reports whether the sale can no longer change status
func (s *Sale) IsTerminal() bool {
	return s.Status == SaleCompleted || s.Status == SaleCancelled
}

// Complete transitions the sale from pending to completed. The caller is
// responsible for posting the matching stock debit in the same transaction.
func (s *Sale) Complete() error {
	if s.Status != SalePending {
		return ErrInvalidStateTransition
	}
	now := time.Now()
	s.Status = SaleCompleted
	s.CompletedAt = &now
	s.Touch()
	return nil
}

// Cancel transitions the sale from pending to cancelled
func (s *Sale) Cancel() error {
	if s.Status != SalePending {
		return ErrInvalidStateTransition
	}
	s.Status = SaleCancelled
	s.Touch()
	return nil
}

// UpdateDetails changes the commercial fields of a pending sale. Terminal
// sales are immutable because their totals already feed reports and stock.
func (s *Sale) UpdateDetails(quantity, unitPrice decimal.Decimal, saleDate time.Time, notes string) error {
	if s.Status != SalePending {
		return ErrInvalidStateTransition
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Sale quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	s.Quantity = quantity
	s.UnitPrice = unitPrice
	if !saleDate.IsZero() {
		s.SaleDate = saleDate
	}
	s.Notes = notes
	s.Touch()
	return nil
}
