package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/catalog"
	"github.com/tsaci/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductInput contains the attributes for creating or updating a product
type ProductInput struct {
	Name     string
	Category string
	Unit     string
	Price    decimal.Decimal
}

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*catalog.Product, error) {
	product, err := catalog.NewProduct(input.Name, input.Category, input.Unit, input.Price)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.ErrStorageFailure
	}

	s.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Get returns one product by ID
func (s *ProductService) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a product's attributes
func (s *ProductService) Update(ctx context.Context, id int64, input ProductInput) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Category, input.Unit, input.Price); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Int64("product_id", id), zap.Error(err))
		return nil, shared.ErrStorageFailure
	}
	return product, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}
