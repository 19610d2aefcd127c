package shared

import "context"

// TxManager runs a function inside one read-write transaction. All
// persistence calls made through the derived context commit or roll back
// atomically; the function returning an error rolls everything back.
type TxManager interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
