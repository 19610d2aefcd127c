package order

import "context"

// Repository persistence port for orders.
// Save persists the order together with its items atomically; on insert the
// generated identity is written back via Order.SetID.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Order, error)
	Save(ctx context.Context, o *Order) error
}
