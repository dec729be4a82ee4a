package partner

import (
	"strings"

	"github.com/tsaci/backend/internal/domain/shared"
)

// Customer represents a buyer of the plant's products
type Customer struct {
	shared.BaseEntity
	Name    string `gorm:"size:200;not null;index"`
	Contact string `gorm:"size:200"`
	Address string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, contact, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name is required")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Contact:    strings.TrimSpace(contact),
		Address:    strings.TrimSpace(address),
	}, nil
}

// Update applies new attribute values to the customer
func (c *Customer) Update(name, contact, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name is required")
	}
	c.Name = name
	c.Contact = strings.TrimSpace(contact)
	c.Address = strings.TrimSpace(address)
	c.Touch()
	return nil
}
