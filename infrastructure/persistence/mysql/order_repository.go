package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/juanpineyrob/dscommerce/domain/order"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/mysql/po"
)

// OrderRepository GORM implementation of the order port. The order row and
// its item rows are managed manually; GORM associations are not used.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID loads the order with its items and payment.
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError()
		}
		return nil, err
	}

	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Order("product_id").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	var paymentPO *po.PaymentPO
	var payment po.PaymentPO
	err := db.Where("order_id = ?", id).First(&payment).Error
	switch {
	case err == nil:
		paymentPO = &payment
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Unpaid order.
	default:
		return nil, err
	}

	return orderPO.ToDomain(itemPOs, paymentPO), nil
}

// Save persists the order and cascades to its items. A new order inserts
// the order row first so the generated id can stamp every item row; item
// rows are written exactly once because items never change after creation.
// All writes share one transaction, so an item insert failing (for example
// a missing product reference) rolls back the whole order.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	isNew := o.ID() == 0
	orderPO, _, _ := po.FromOrderDomain(o)

	if err := tx.Save(orderPO).Error; err != nil {
		return translateError(err, "order")
	}
	if isNew {
		o.SetID(orderPO.ID)
	}

	// Rebuild the POs after the id assignment so item and payment rows
	// reference the generated order id.
	_, itemPOs, paymentPO := po.FromOrderDomain(o)

	if isNew && len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return translateError(err, "order item")
		}
	}

	if paymentPO != nil {
		if err := tx.Where("order_id = ?", o.ID()).
			Assign(po.PaymentPO{Moment: paymentPO.Moment}).
			FirstOrCreate(&po.PaymentPO{}).Error; err != nil {
			return translateError(err, "payment")
		}
	}

	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
