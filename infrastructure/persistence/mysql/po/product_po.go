// Package po persistence objects: plain database mappings with no business
// logic. GORM association features are not used; joins are managed by the
// repositories so aggregate boundaries stay explicit.
package po

import (
	"github.com/shopspring/decimal"

	"github.com/juanpineyrob/dscommerce/domain/catalog"
)

// ProductPO product row.
type ProductPO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"size:80;not null;index"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImgURL      string          `gorm:"size:255"`
}

func (ProductPO) TableName() string { return "products" }

// CategoryPO category row.
type CategoryPO struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:80;not null"`
}

func (CategoryPO) TableName() string { return "categories" }

// ProductCategoryPO product/category link row. Association order is
// irrelevant; the composite key deduplicates.
type ProductCategoryPO struct {
	ProductID  int64 `gorm:"primaryKey"`
	CategoryID int64 `gorm:"primaryKey"`
}

func (ProductCategoryPO) TableName() string { return "product_categories" }

// FromProductDomain converts a product to its row plus link rows.
func FromProductDomain(p *catalog.Product) (*ProductPO, []ProductCategoryPO) {
	productPO := &ProductPO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImgURL:      p.ImgURL,
	}

	links := make([]ProductCategoryPO, len(p.Categories))
	for i, cat := range p.Categories {
		links[i] = ProductCategoryPO{ProductID: p.ID, CategoryID: cat.ID}
	}
	return productPO, links
}

// ToDomain converts a product row and its resolved categories to the domain
// model.
func (p *ProductPO) ToDomain(categories []catalog.Category) *catalog.Product {
	return &catalog.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImgURL:      p.ImgURL,
		Categories:  categories,
	}
}

// ToDomain converts a category row to the domain model.
func (c *CategoryPO) ToDomain() catalog.Category {
	return catalog.Category{ID: c.ID, Name: c.Name}
}
