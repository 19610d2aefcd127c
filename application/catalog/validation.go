package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/domain/shared"
)

const (
	nameMinLen        = 3
	nameMaxLen        = 80
	descriptionMinLen = 10
)

// validateProductRequest checks the payload and collects every violation so
// the caller sees the complete list, not just the first.
func (s *Service) validateProductRequest(ctx context.Context, req ProductRequest) error {
	var fields []shared.FieldMessage

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fields = append(fields, shared.FieldMessage{Field: "name", Message: "Required field"})
	} else if len(name) < nameMinLen || len(name) > nameMaxLen {
		fields = append(fields, shared.FieldMessage{Field: "name", Message: "Name must be between 3 and 80 characters"})
	}

	if strings.TrimSpace(req.Description) == "" {
		fields = append(fields, shared.FieldMessage{Field: "description", Message: "Required field"})
	} else if len(strings.TrimSpace(req.Description)) < descriptionMinLen {
		fields = append(fields, shared.FieldMessage{Field: "description", Message: "Description must be at least 10 characters"})
	}

	if !req.Price.GreaterThan(decimal.Zero) {
		fields = append(fields, shared.FieldMessage{Field: "price", Message: "Price must be positive"})
	}

	if len(req.Categories) == 0 {
		fields = append(fields, shared.FieldMessage{Field: "categories", Message: "At least one category is required"})
	} else {
		seen := make(map[int64]bool, len(req.Categories))
		for _, c := range req.Categories {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			exists, err := s.categoryRepo.ExistsByID(ctx, c.ID)
			if err != nil {
				return err
			}
			if !exists {
				fields = append(fields, shared.FieldMessage{Field: "categories", Message: "Category does not exist"})
			}
		}
	}

	if len(fields) > 0 {
		return shared.NewValidationError("product", fields)
	}
	return nil
}

// toDomainProduct maps a validated request onto the domain model.
func toDomainProduct(id int64, req ProductRequest) *catalog.Product {
	seen := make(map[int64]bool, len(req.Categories))
	categories := make([]catalog.Category, 0, len(req.Categories))
	for _, c := range req.Categories {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		categories = append(categories, catalog.Category{ID: c.ID})
	}
	return &catalog.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		ImgURL:      req.ImgURL,
		Categories:  categories,
	}
}
