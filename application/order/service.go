// Package order Application layer for the order workflow: placement with
// catalog price capture, authorized reads and status transitions.
package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/juanpineyrob/dscommerce/application/auth"
	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/domain/order"
	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
	"github.com/juanpineyrob/dscommerce/pkg/logger"
)

// Service order workflow use cases.
type Service struct {
	orderRepo   order.Repository
	productRepo catalog.Repository
	userRepo    user.Repository
	gate        *auth.Gate
	tx          shared.TxManager
	now         func() time.Time
}

// NewService creates the order service.
func NewService(
	orderRepo order.Repository,
	productRepo catalog.Repository,
	userRepo user.Repository,
	gate *auth.Gate,
	tx shared.TxManager,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		gate:        gate,
		tx:          tx,
		now:         time.Now,
	}
}

// FindByID returns the order when the caller owns it or is an admin.
// The ownership check runs after the load because it needs the order's
// client; a failed check still hides nothing the caller could not already
// infer from the 403.
func (s *Service) FindByID(ctx context.Context, id int64) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.gate.ValidateSelfOrAdmin(ctx, o.ClientID()); err != nil {
		return nil, err
	}

	return s.respond(ctx, o)
}

// Insert places a new order for the authenticated principal. Every
// referenced product is loaded first; the name and price in effect at this
// moment are captured into the items, so later catalog edits do not change
// the order. Any unknown product aborts the whole request before anything
// is persisted.
func (s *Service) Insert(ctx context.Context, req InsertRequest) (*OrderResponse, error) {
	principal, ok := user.PrincipalFromContext(ctx)
	if !ok {
		return nil, shared.NewUnauthenticatedError()
	}

	var o *order.Order
	err := s.tx.Execute(ctx, func(ctx context.Context) error {
		specs := make([]order.ItemSpec, 0, len(req.Items))
		for _, item := range req.Items {
			p, err := s.productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			specs = append(specs, order.ItemSpec{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    item.Quantity,
				Price:       p.Price,
			})
		}

		var err error
		o, err = order.NewOrder(principal.ID, s.now(), specs)
		if err != nil {
			return err
		}

		return s.orderRepo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("order placed",
		zap.Int64("order_id", o.ID()),
		zap.Int64("client_id", principal.ID),
		zap.Int("items", len(o.Items())),
		zap.String("total", o.Total().String()))

	return s.respond(ctx, o)
}

// UpdateStatus moves the order along its lifecycle. Admin only; illegal
// transitions are rejected by the aggregate.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*OrderResponse, error) {
	if err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	target, ok := order.ParseStatus(req.Status)
	if !ok {
		return nil, shared.NewValidationError("order", []shared.FieldMessage{
			{Field: "status", Message: "Unknown status"},
		})
	}

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch target {
	case order.StatusPaid:
		err = o.Pay(s.now())
	case order.StatusShipped:
		err = o.Ship()
	case order.StatusDelivered:
		err = o.Deliver()
	case order.StatusCanceled:
		err = o.Cancel()
	default:
		err = order.NewInvalidTransitionError(o.Status(), target)
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("order status updated",
		zap.Int64("order_id", id),
		zap.String("status", string(o.Status())))

	return s.respond(ctx, o)
}

func (s *Service) respond(ctx context.Context, o *order.Order) (*OrderResponse, error) {
	client, err := s.userRepo.FindByID(ctx, o.ClientID())
	if err != nil {
		// The order outlives its projection needs; render without the name.
		client = nil
	}
	return toOrderResponse(o, client), nil
}
