package order

import (
	"errors"

	"github.com/juanpineyrob/dscommerce/domain/shared"
)

// Sentinel errors for the order subdomain, usable with errors.Is().
var (
	// ErrOrderNotFound order id does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyItems an order must have at least one item.
	ErrEmptyItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity item quantity must be positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidTransition illegal status transition.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// NewOrderNotFoundError creates an order-not-found error that also satisfies
// errors.Is(err, shared.ErrNotFound) so the API layer maps it to 404.
func NewOrderNotFoundError() error {
	return &orderError{
		sentinel: ErrOrderNotFound,
		shared:   shared.ErrNotFound,
		message:  "order not found",
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyItemsError classifies an itemless order as invalid input.
func NewEmptyItemsError() error {
	return &orderError{
		sentinel: ErrEmptyItems,
		shared:   shared.ErrInvalidInput,
		message:  "order must have at least one item",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidQuantityError classifies a non-positive quantity as invalid
// input.
func NewInvalidQuantityError() error {
	return &orderError{
		sentinel: ErrInvalidQuantity,
		shared:   shared.ErrInvalidInput,
		message:  "quantity must be positive",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidTransitionError creates an illegal-transition error naming both
// states.
func NewInvalidTransitionError(from, to Status) error {
	return &orderError{
		sentinel: ErrInvalidTransition,
		shared:   shared.ErrInvalidInput,
		message:  "cannot transition order from " + string(from) + " to " + string(to),
		stack:    shared.CaptureStack(3),
	}
}

// orderError order subdomain error with captured stack. Unwraps to both the
// subdomain sentinel and the shared classification sentinel.
type orderError struct {
	sentinel error
	shared   error
	message  string
	stack    []uintptr
}

func (e *orderError) Error() string { return e.message }

func (e *orderError) Unwrap() []error { return []error{e.sentinel, e.shared} }

// Stack implements shared.Stacker.
func (e *orderError) Stack() []string { return shared.FormatStack(e.stack) }
