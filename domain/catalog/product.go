// Package catalog Catalog subdomain: products and their category
// associations. Products carry no behavior of their own; input rules are
// enforced at the application boundary before anything reaches this model.
package catalog

import "github.com/shopspring/decimal"

// Category immutable reference data.
type Category struct {
	ID   int64
	Name string
}

// Product catalog entry. Categories are a many-to-many association with
// no meaningful ordering.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImgURL      string
	Categories  []Category
}

// HasCategory reports whether the product is linked to the category id.
func (p *Product) HasCategory(categoryID int64) bool {
	for _, c := range p.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
