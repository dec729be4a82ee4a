package partner

import (
	"context"

	"github.com/tsaci/backend/internal/domain/partner"
	"github.com/tsaci/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PartnerInput contains the attributes shared by customers and suppliers
type PartnerInput struct {
	Name    string
	Contact string
	Address string
}

// CustomerService handles customer directory operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, logger: logger}
}

// Create adds a customer
func (s *CustomerService) Create(ctx context.Context, input PartnerInput) (*partner.Customer, error) {
	customer, err := partner.NewCustomer(input.Name, input.Contact, input.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return nil, shared.ErrStorageFailure
	}
	return customer, nil
}

// Get returns one customer by ID
func (s *CustomerService) Get(ctx context.Context, id int64) (*partner.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Customer], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(customers, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a customer's attributes
func (s *CustomerService) Update(ctx context.Context, id int64, input PartnerInput) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(input.Name, input.Contact, input.Address); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, shared.ErrStorageFailure
	}
	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.customerRepo.Delete(ctx, id)
}

// SupplierService handles supplier directory operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

// Create adds a supplier
func (s *SupplierService) Create(ctx context.Context, input PartnerInput) (*partner.Supplier, error) {
	supplier, err := partner.NewSupplier(input.Name, input.Contact, input.Address)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		s.logger.Error("Failed to save supplier", zap.Error(err))
		return nil, shared.ErrStorageFailure
	}
	return supplier, nil
}

// Get returns one supplier by ID
func (s *SupplierService) Get(ctx context.Context, id int64) (*partner.Supplier, error) {
	return s.supplierRepo.FindByID(ctx, id)
}

// List returns a page of suppliers
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Supplier], error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(suppliers, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a supplier's attributes
func (s *SupplierService) Update(ctx context.Context, id int64, input PartnerInput) (*partner.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(input.Name, input.Contact, input.Address); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, shared.ErrStorageFailure
	}
	return supplier, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	return s.supplierRepo.Delete(ctx, id)
}
