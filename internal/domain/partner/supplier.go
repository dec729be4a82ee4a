package partner

import (
	"strings"

	"github.com/tsaci/backend/internal/domain/shared"
)

// Supplier represents a provider of raw materials
type Supplier struct {
	shared.BaseEntity
	Name    string `gorm:"size:200;not null;index"`
	Contact string `gorm:"size:200"`
	Address string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contact, address string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name is required")
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Contact:    strings.TrimSpace(contact),
		Address:    strings.TrimSpace(address),
	}, nil
}

// Update applies new attribute values to the supplier
func (s *Supplier) Update(name, contact, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name is required")
	}
	s.Name = name
	s.Contact = strings.TrimSpace(contact)
	s.Address = strings.TrimSpace(address)
	s.Touch()
	return nil
}
