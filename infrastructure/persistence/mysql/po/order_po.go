package po

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/juanpineyrob/dscommerce/domain/order"
)

// OrderPO order row. Only the client id is stored; no GORM association with
// users. The order total is never persisted, it is derived from the items.
type OrderPO struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Moment   time.Time `gorm:"not null"`
	Status   string    `gorm:"size:20;not null"`
	ClientID int64     `gorm:"index;not null"`
}

func (OrderPO) TableName() string { return "orders" }

// OrderItemPO order line row with composite key (order id, product id).
// product_id carries a RESTRICT foreign key to products so deleting a
// referenced product fails at the database.
type OrderItemPO struct {
	OrderID     int64           `gorm:"primaryKey"`
	ProductID   int64           `gorm:"primaryKey"`
	ProductName string          `gorm:"size:80;not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (OrderItemPO) TableName() string { return "order_items" }

// PaymentPO payment row, one-to-one with its order.
type PaymentPO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	OrderID int64     `gorm:"uniqueIndex;not null"`
	Moment  time.Time `gorm:"not null"`
}

func (PaymentPO) TableName() string { return "payments" }

// FromOrderDomain converts an order aggregate to its rows.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO, *PaymentPO) {
	orderPO := &OrderPO{
		ID:       o.ID(),
		Moment:   o.Moment(),
		Status:   string(o.Status()),
		ClientID: o.ClientID(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			OrderID:     o.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
		}
	}

	var paymentPO *PaymentPO
	if p := o.Payment(); p != nil {
		paymentPO = &PaymentPO{ID: p.ID, OrderID: o.ID(), Moment: p.Moment}
	}

	return orderPO, itemPOs, paymentPO
}

// ToDomain reconstructs the order aggregate from its rows.
func (p *OrderPO) ToDomain(itemPOs []OrderItemPO, paymentPO *PaymentPO) *order.Order {
	items := make([]order.ItemSpec, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.ItemSpec{
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Quantity:    itemPO.Quantity,
			Price:       itemPO.Price,
		}
	}

	status, ok := order.ParseStatus(p.Status)
	if !ok {
		status = order.StatusWaitingPayment
	}

	var payment *order.Payment
	if paymentPO != nil {
		payment = &order.Payment{ID: paymentPO.ID, Moment: paymentPO.Moment}
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:       p.ID,
		Moment:   p.Moment,
		Status:   status,
		ClientID: p.ClientID,
		Payment:  payment,
		Items:    items,
	})
}
