package catalog

import "context"

// PageRequest pagination parameters passed through from the transport
// layer. Sort is a whitelisted column name; no policy is applied here.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// Page one page of results plus the total count across all pages.
type Page[T any] struct {
	Content    []T
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// Repository persistence port for products.
// Lookups that miss return an error satisfying errors.Is(err, shared.ErrNotFound);
// Delete translates a referential-integrity fault into shared.ErrIntegrity.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	// SearchByName performs a case-insensitive substring match when name is
	// non-empty, otherwise returns all products paginated.
	SearchByName(ctx context.Context, name string, page PageRequest) (*Page[Product], error)
	Save(ctx context.Context, product *Product) error
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository persistence port for categories.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
