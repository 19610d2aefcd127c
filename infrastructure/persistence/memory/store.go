// Package memory in-memory implementations of the persistence ports.
// They reproduce the gateway's observable behavior, including referential
// integrity between order items and products, so services can be tested
// without a database.
package memory

import (
	"context"
	"sync"

	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/domain/order"
	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
)

// Store shared in-memory state behind the fake repositories.
type Store struct {
	mu sync.RWMutex

	products   map[int64]catalog.Product
	categories map[int64]catalog.Category
	users      map[int64]*user.User
	orders     map[int64]*order.Order

	nextProductID int64
	nextOrderID   int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		products:      make(map[int64]catalog.Product),
		categories:    make(map[int64]catalog.Category),
		users:         make(map[int64]*user.User),
		orders:        make(map[int64]*order.Order),
		nextProductID: 1,
		nextOrderID:   1,
	}
}

// AddCategory seeds a category.
func (s *Store) AddCategory(c catalog.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// AddProduct seeds a product, assigning an id when absent.
func (s *Store) AddProduct(p catalog.Product) catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextProductID
	}
	if p.ID >= s.nextProductID {
		s.nextProductID = p.ID + 1
	}
	s.products[p.ID] = p
	return p
}

// AddUser seeds a user account.
func (s *Store) AddUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = u
}

// AddOrder seeds an order, assigning an id when absent.
func (s *Store) AddOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID() == 0 {
		o.SetID(s.nextOrderID)
	}
	if o.ID() >= s.nextOrderID {
		s.nextOrderID = o.ID() + 1
	}
	s.orders[o.ID()] = o
}

// OrderCount reports the number of persisted orders.
func (s *Store) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// productReferenced reports whether any order item references the product.
// Callers hold the lock.
func (s *Store) productReferenced(productID int64) bool {
	for _, o := range s.orders {
		for _, item := range o.Items() {
			if item.ProductID() == productID {
				return true
			}
		}
	}
	return false
}

// TxManager pass-through transaction manager for tests. The store has no
// rollback; atomicity of the fake is provided by repositories validating
// before mutating.
type TxManager struct{}

// Execute implements shared.TxManager.
func (TxManager) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ shared.TxManager = TxManager{}
