// Package catalog Application layer for the product catalog: paged search,
// product CRUD and category listing.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/pkg/logger"
)

// Service product catalog use cases.
type Service struct {
	productRepo  catalog.Repository
	categoryRepo catalog.CategoryRepository
}

// NewService creates the catalog service.
func NewService(productRepo catalog.Repository, categoryRepo catalog.CategoryRepository) *Service {
	return &Service{productRepo: productRepo, categoryRepo: categoryRepo}
}

// FindByID returns the full product projection.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// FindAll returns a page of reduced projections, optionally filtered by a
// case-insensitive name fragment.
func (s *Service) FindAll(ctx context.Context, name string, page catalog.PageRequest) (*PageResponse[ProductMinResponse], error) {
	result, err := s.productRepo.SearchByName(ctx, name, page)
	if err != nil {
		return nil, err
	}

	content := make([]ProductMinResponse, len(result.Content))
	for i, p := range result.Content {
		content[i] = toProductMinResponse(p)
	}
	return &PageResponse[ProductMinResponse]{
		Content:       content,
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalItems,
		TotalPages:    result.TotalPages,
	}, nil
}

// Insert validates and persists a new product, then returns it with the
// generated id.
func (s *Service) Insert(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	if err := s.validateProductRequest(ctx, req); err != nil {
		return nil, err
	}

	p := toDomainProduct(0, req)
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.String("name", p.Name))

	return s.FindByID(ctx, p.ID)
}

// Update validates and fully replaces an existing product, category links
// included. A missing id surfaces as not found before any write happens.
func (s *Service) Update(ctx context.Context, id int64, req ProductRequest) (*ProductResponse, error) {
	if err := s.validateProductRequest(ctx, req); err != nil {
		return nil, err
	}

	// Load first so an unknown id fails before any write.
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	p := toDomainProduct(id, req)
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("product updated", zap.Int64("product_id", id))

	return s.FindByID(ctx, id)
}

// Delete removes a product. Deleting a product referenced by order items
// fails with an integrity error and leaves the product in place; the
// check is enforced by the database constraint, not application logic,
// so it also holds under concurrent order creation.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// FindAllCategories lists every category ordered by id.
func (s *Service) FindAllCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(categories), nil
}
