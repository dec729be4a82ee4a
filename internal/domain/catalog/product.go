package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// Product represents a material or finished good tracked by the plant
type Product struct {
	shared.BaseEntity
	Name     string          `gorm:"size:200;not null;index"`
	Category string          `gorm:"size:100"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit     string          `gorm:"size:50;not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, category, unit string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Product unit is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   strings.TrimSpace(category),
		Price:      price,
		Unit:       unit,
	}, nil
}

// Update applies new attribute values to the product
func (p *Product) Update(name, category, unit string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Product unit is required")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	p.Name = name
	p.Category = strings.TrimSpace(category)
	p.Unit = unit
	p.Price = price
	p.Touch()
	return nil
}
