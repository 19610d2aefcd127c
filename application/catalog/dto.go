package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/juanpineyrob/dscommerce/domain/catalog"
)

// ProductRequest create/update product DTO. Validation is performed by the
// service so failures surface as field/message pairs, not binding errors.
type ProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	ImgURL      string            `json:"imgUrl"`
	Categories  []CategoryRequest `json:"categories"`
}

// CategoryRequest category reference inside a product payload.
type CategoryRequest struct {
	ID int64 `json:"id"`
}

// ProductResponse full product projection.
type ProductResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	ImgURL      string             `json:"imgUrl"`
	Categories  []CategoryResponse `json:"categories"`
}

// ProductMinResponse reduced projection used by paged listings.
type ProductMinResponse struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	ImgURL string          `json:"imgUrl"`
}

// CategoryResponse category projection.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PageResponse paged listing envelope.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	categories := make([]CategoryResponse, len(p.Categories))
	for i, c := range p.Categories {
		categories[i] = CategoryResponse{ID: c.ID, Name: c.Name}
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImgURL:      p.ImgURL,
		Categories:  categories,
	}
}

func toProductMinResponse(p catalog.Product) ProductMinResponse {
	return ProductMinResponse{ID: p.ID, Name: p.Name, Price: p.Price, ImgURL: p.ImgURL}
}

func toCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name}
	}
	return out
}
