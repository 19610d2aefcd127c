package order

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/juanpineyrob/dscommerce/domain/shared"
)

func specs() []ItemSpec {
	return []ItemSpec{
		{ProductID: 1, ProductName: "The Lord of the Rings", Quantity: 2, Price: decimal.NewFromFloat(10.0)},
		{ProductID: 2, ProductName: "Smart TV", Quantity: 1, Price: decimal.NewFromFloat(100.0)},
	}
}

func TestNewOrder(t *testing.T) {
	moment := time.Now()

	o, err := NewOrder(5, moment, specs())
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	if o.Status() != StatusWaitingPayment {
		t.Errorf("Status = %s, want WAITING_PAYMENT", o.Status())
	}
	if o.ClientID() != 5 {
		t.Errorf("ClientID = %d, want 5", o.ClientID())
	}
	if !o.Moment().Equal(moment) {
		t.Errorf("Moment = %v, want %v", o.Moment(), moment)
	}
	if o.Payment() != nil {
		t.Error("new order must not have a payment")
	}
	if len(o.Items()) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(o.Items()))
	}
}

func TestNewOrderRejectsEmptyItems(t *testing.T) {
	_, err := NewOrder(5, time.Now(), nil)
	if !errors.Is(err, ErrEmptyItems) {
		t.Errorf("NewOrder() error = %v, want ErrEmptyItems", err)
	}
}

func TestNewOrderRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		bad := specs()
		bad[0].Quantity = qty

		_, err := NewOrder(5, time.Now(), bad)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: NewOrder() error = %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestOrder_Total(t *testing.T) {
	o, err := NewOrder(5, time.Now(), specs())
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}

	// 2 x 10.0 + 1 x 100.0
	if !o.Total().Equal(decimal.NewFromFloat(120.0)) {
		t.Errorf("Total = %s, want 120", o.Total())
	}
}

func TestOrder_TotalExactDecimal(t *testing.T) {
	// 0.1 x 3 must be exactly 0.3, which binary floats cannot represent.
	o, err := NewOrder(5, time.Now(), []ItemSpec{
		{ProductID: 1, ProductName: "Sticker", Quantity: 3, Price: decimal.RequireFromString("0.1")},
	})
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	if !o.Total().Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("Total = %s, want exactly 0.3", o.Total())
	}
}

func TestOrder_Transitions(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		o, err := NewOrder(5, time.Now(), specs())
		if err != nil {
			t.Fatalf("NewOrder() error = %v", err)
		}
		return o
	}

	t.Run("full lifecycle", func(t *testing.T) {
		o := newOrder(t)
		paidAt := time.Now()

		if err := o.Pay(paidAt); err != nil {
			t.Fatalf("Pay() error = %v", err)
		}
		if o.Status() != StatusPaid {
			t.Errorf("Status = %s, want PAID", o.Status())
		}
		if p := o.Payment(); p == nil || !p.Moment.Equal(paidAt) {
			t.Errorf("Payment = %+v, want moment %v", o.Payment(), paidAt)
		}

		if err := o.Ship(); err != nil {
			t.Fatalf("Ship() error = %v", err)
		}
		if err := o.Deliver(); err != nil {
			t.Fatalf("Deliver() error = %v", err)
		}
		if o.Status() != StatusDelivered {
			t.Errorf("Status = %s, want DELIVERED", o.Status())
		}
	})

	t.Run("cancel before shipping", func(t *testing.T) {
		o := newOrder(t)
		if err := o.Cancel(); err != nil {
			t.Errorf("Cancel() from WAITING_PAYMENT error = %v", err)
		}

		o = newOrder(t)
		if err := o.Pay(time.Now()); err != nil {
			t.Fatalf("Pay() error = %v", err)
		}
		if err := o.Cancel(); err != nil {
			t.Errorf("Cancel() from PAID error = %v", err)
		}
	})

	t.Run("illegal transitions", func(t *testing.T) {
		o := newOrder(t)

		if err := o.Ship(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Ship() from WAITING_PAYMENT error = %v, want ErrInvalidTransition", err)
		}
		if err := o.Deliver(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Deliver() from WAITING_PAYMENT error = %v, want ErrInvalidTransition", err)
		}

		if err := o.Pay(time.Now()); err != nil {
			t.Fatalf("Pay() error = %v", err)
		}
		if err := o.Pay(time.Now()); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Pay() twice error = %v, want ErrInvalidTransition", err)
		}

		if err := o.Ship(); err != nil {
			t.Fatalf("Ship() error = %v", err)
		}
		if err := o.Cancel(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Cancel() after shipping error = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestOrder_ItemsAreCopies(t *testing.T) {
	o, err := NewOrder(5, time.Now(), specs())
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}

	items := o.Items()
	items[0] = Item{}

	if o.Items()[0].ProductName() != "The Lord of the Rings" {
		t.Error("mutating the returned slice must not change the order")
	}
	if !o.Total().Equal(decimal.NewFromFloat(120.0)) {
		t.Errorf("Total = %s after caller-side mutation, want 120", o.Total())
	}
}

func TestRebuildFromDTO(t *testing.T) {
	paidAt := time.Now()
	o := RebuildFromDTO(ReconstructionDTO{
		ID:       10,
		Moment:   paidAt.Add(-time.Hour),
		Status:   StatusPaid,
		ClientID: 5,
		Payment:  &Payment{ID: 3, Moment: paidAt},
		Items:    specs(),
	})

	if o.ID() != 10 || o.Status() != StatusPaid || o.ClientID() != 5 {
		t.Errorf("rebuilt order = id %d status %s client %d", o.ID(), o.Status(), o.ClientID())
	}
	if p := o.Payment(); p == nil || p.ID != 3 {
		t.Errorf("Payment = %+v, want id 3", o.Payment())
	}
	if !o.Total().Equal(decimal.NewFromFloat(120.0)) {
		t.Errorf("Total = %s, want 120", o.Total())
	}
}

func TestOrderNotFoundErrorChain(t *testing.T) {
	err := NewOrderNotFoundError()
	if !errors.Is(err, ErrOrderNotFound) {
		t.Error("want ErrOrderNotFound in the chain")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		t.Error("want shared.ErrNotFound in the chain")
	}
}

func TestInvalidTransitionErrorChain(t *testing.T) {
	err := NewInvalidTransitionError(StatusDelivered, StatusPaid)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("want ErrInvalidTransition in the chain")
	}
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Error("want shared.ErrInvalidInput in the chain")
	}
}
