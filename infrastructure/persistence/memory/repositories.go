package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/domain/order"
	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
)

// ProductRepository in-memory product port.
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a fake product repository over the store.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, shared.NewNotFoundError("product")
	}
	copied := p
	copied.Categories = append([]catalog.Category(nil), p.Categories...)
	return &copied, nil
}

func (r *ProductRepository) SearchByName(ctx context.Context, name string, page catalog.PageRequest) (*catalog.Page[catalog.Product], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = 12
	}

	var matched []catalog.Product
	needle := strings.ToUpper(name)
	for _, p := range r.store.products {
		if name == "" || strings.Contains(strings.ToUpper(p.Name), needle) {
			slim := p
			slim.Description = ""
			slim.Categories = nil
			matched = append(matched, slim)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		switch page.Sort {
		case "name":
			return matched[i].Name < matched[j].Name
		case "price":
			return matched[i].Price.LessThan(matched[j].Price)
		default:
			return matched[i].ID < matched[j].ID
		}
	})

	total := int64(len(matched))
	start := page.Page * page.Size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return &catalog.Page[catalog.Product]{
		Content:    matched[start:end],
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.store.nextProductID
		r.store.nextProductID++
	}
	copied := *product
	copied.Categories = append([]catalog.Category(nil), product.Categories...)
	// Reads resolve category names through the link, so fill them in here.
	for i, c := range copied.Categories {
		if stored, ok := r.store.categories[c.ID]; ok {
			copied.Categories[i].Name = stored.Name
		}
	}
	r.store.products[product.ID] = copied
	return nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return shared.NewNotFoundError("product")
	}
	if r.store.productReferenced(id) {
		return shared.NewIntegrityError("product", "referential integrity violation")
	}
	delete(r.store.products, id)
	return nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.products[id]
	return ok, nil
}

var _ catalog.Repository = (*ProductRepository)(nil)

// CategoryRepository in-memory category port.
type CategoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a fake category repository over the store.
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]catalog.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *CategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.categories[id]
	return ok, nil
}

var _ catalog.CategoryRepository = (*CategoryRepository)(nil)

// OrderRepository in-memory order port.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates a fake order repository over the store.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError()
	}
	return o, nil
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Same referential check the database FK would perform.
	for _, item := range o.Items() {
		if _, ok := r.store.products[item.ProductID()]; !ok {
			return shared.NewIntegrityError("order item", "referenced product does not exist")
		}
	}

	if o.ID() == 0 {
		o.SetID(r.store.nextOrderID)
		r.store.nextOrderID++
	}
	r.store.orders[o.ID()] = o
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)

// UserRepository in-memory user port.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a fake user repository over the store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, shared.NewNotFoundError("user")
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, shared.NewNotFoundError("user")
}

var _ user.Repository = (*UserRepository)(nil)
