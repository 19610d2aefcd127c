package user

import "context"

// Repository persistence port for user accounts.
// Lookups that miss return an error satisfying errors.Is(err, shared.ErrNotFound).
type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
