/*
Package order Order subdomain.

Order is the aggregate root: it exclusively owns its OrderItem collection
(items are created with the order and deleted with it), while products are
referenced by id only. All state changes go through aggregate methods so the
two invariants hold everywhere:

 1. The total is derived, never stored: Total() recomputes
    sum(item price x quantity) with exact decimal arithmetic.
 2. Items are immutable once the order exists. There is no mutation path,
    and accessors return copies.
*/
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status order lifecycle state.
type Status string

const (
	StatusWaitingPayment Status = "WAITING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCanceled       Status = "CANCELED"
)

// ParseStatus maps a stored status string onto the enumeration.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusWaitingPayment, StatusPaid, StatusShipped, StatusDelivered, StatusCanceled:
		return Status(s), true
	}
	return "", false
}

// Order aggregate root.
type Order struct {
	id       int64
	moment   time.Time
	status   Status
	clientID int64
	payment  *Payment
	items    []Item
}

// Item order line. The composite identity is (order id, product id).
// Price is a snapshot of the product's price at order time, deliberately
// decoupled from the live product price so historical orders stay accurate.
type Item struct {
	productID   int64
	productName string
	quantity    int
	price       decimal.Decimal
}

// Payment one-to-one with its order.
type Payment struct {
	ID     int64
	Moment time.Time
}

// ItemSpec describes one line of a new order: the referenced product and
// the snapshot values resolved from it.
type ItemSpec struct {
	ProductID   int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// NewOrder creates an order in WAITING_PAYMENT for the given client.
// The caller has already resolved every product reference; specs carry the
// product's current price, never a client-submitted one.
func NewOrder(clientID int64, moment time.Time, specs []ItemSpec) (*Order, error) {
	if len(specs) == 0 {
		return nil, NewEmptyItemsError()
	}

	items := make([]Item, len(specs))
	for i, spec := range specs {
		if spec.Quantity <= 0 {
			return nil, NewInvalidQuantityError()
		}
		items[i] = Item{
			productID:   spec.ProductID,
			productName: spec.ProductName,
			quantity:    spec.Quantity,
			price:       spec.Price,
		}
	}

	return &Order{
		moment:   moment,
		status:   StatusWaitingPayment,
		clientID: clientID,
		items:    items,
	}, nil
}

// ReconstructionDTO rebuilds an Order from persisted state.
// Repository-layer use only.
type ReconstructionDTO struct {
	ID       int64
	Moment   time.Time
	Status   Status
	ClientID int64
	Payment  *Payment
	Items    []ItemSpec
}

// RebuildFromDTO reconstructs an Order aggregate from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	items := make([]Item, len(dto.Items))
	for i, spec := range dto.Items {
		items[i] = Item{
			productID:   spec.ProductID,
			productName: spec.ProductName,
			quantity:    spec.Quantity,
			price:       spec.Price,
		}
	}
	var payment *Payment
	if dto.Payment != nil {
		p := *dto.Payment
		payment = &p
	}
	return &Order{
		id:       dto.ID,
		moment:   dto.Moment,
		status:   dto.Status,
		clientID: dto.ClientID,
		payment:  payment,
		items:    items,
	}
}

// SetID assigns the identity produced by the persistence layer on insert.
// Repository-layer use only.
func (o *Order) SetID(id int64) { o.id = id }

// State transitions. The legal graph is
// WAITING_PAYMENT -> PAID -> SHIPPED -> DELIVERED, with CANCELED reachable
// from WAITING_PAYMENT or PAID.

// Pay marks the order paid and records the payment moment.
func (o *Order) Pay(moment time.Time) error {
	if o.status != StatusWaitingPayment {
		return NewInvalidTransitionError(o.status, StatusPaid)
	}
	o.status = StatusPaid
	o.payment = &Payment{Moment: moment}
	return nil
}

// Ship marks a paid order shipped.
func (o *Order) Ship() error {
	if o.status != StatusPaid {
		return NewInvalidTransitionError(o.status, StatusShipped)
	}
	o.status = StatusShipped
	return nil
}

// Deliver marks a shipped order delivered.
func (o *Order) Deliver() error {
	if o.status != StatusShipped {
		return NewInvalidTransitionError(o.status, StatusDelivered)
	}
	o.status = StatusDelivered
	return nil
}

// Cancel cancels an order that has not shipped yet.
func (o *Order) Cancel() error {
	if o.status != StatusWaitingPayment && o.status != StatusPaid {
		return NewInvalidTransitionError(o.status, StatusCanceled)
	}
	o.status = StatusCanceled
	return nil
}

func (o *Order) ID() int64         { return o.id }
func (o *Order) Moment() time.Time { return o.moment }
func (o *Order) Status() Status    { return o.status }
func (o *Order) ClientID() int64   { return o.clientID }

// Payment returns a copy of the payment, or nil while unpaid.
func (o *Order) Payment() *Payment {
	if o.payment == nil {
		return nil
	}
	p := *o.payment
	return &p
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total computes sum(price x quantity) over the items with exact decimal
// arithmetic. Computed on demand, never persisted.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (item Item) ProductID() int64       { return item.productID }
func (item Item) ProductName() string    { return item.productName }
func (item Item) Quantity() int          { return item.quantity }
func (item Item) Price() decimal.Decimal { return item.price }

// Subtotal is price x quantity for this line.
func (item Item) Subtotal() decimal.Decimal {
	return item.price.Mul(decimal.NewFromInt(int64(item.quantity)))
}
