package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/juanpineyrob/dscommerce/domain/order"
	"github.com/juanpineyrob/dscommerce/domain/user"
)

// InsertRequest create order DTO. The client is never taken from the
// payload; it is the authenticated principal.
type InsertRequest struct {
	Items []ItemRequest `json:"items" binding:"required,min=1"`
}

// ItemRequest one requested product. Name and price are not accepted from
// the caller; they are read from the catalog at order time.
type ItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// UpdateStatusRequest status transition DTO.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse order projection with derived total.
type OrderResponse struct {
	ID      int64            `json:"id"`
	Moment  time.Time        `json:"moment"`
	Status  string           `json:"status"`
	Client  ClientResponse   `json:"client"`
	Payment *PaymentResponse `json:"payment"`
	Items   []ItemResponse   `json:"items"`
	Total   decimal.Decimal  `json:"total"`
}

// ClientResponse order owner projection.
type ClientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PaymentResponse payment projection.
type PaymentResponse struct {
	ID     int64     `json:"id"`
	Moment time.Time `json:"moment"`
}

// ItemResponse order item projection. Name and price are the values
// captured when the order was placed, not the product's current ones.
type ItemResponse struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	SubTotal  decimal.Decimal `json:"subTotal"`
}

func toOrderResponse(o *order.Order, client *user.User) *OrderResponse {
	items := make([]ItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = ItemResponse{
			ProductID: item.ProductID(),
			Name:      item.ProductName(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			SubTotal:  item.Subtotal(),
		}
	}

	var payment *PaymentResponse
	if p := o.Payment(); p != nil {
		payment = &PaymentResponse{ID: p.ID, Moment: p.Moment}
	}

	clientResp := ClientResponse{ID: o.ClientID()}
	if client != nil {
		clientResp.Name = client.Name()
	}

	return &OrderResponse{
		ID:      o.ID(),
		Moment:  o.Moment(),
		Status:  string(o.Status()),
		Client:  clientResp,
		Payment: payment,
		Items:   items,
		Total:   o.Total(),
	}
}
