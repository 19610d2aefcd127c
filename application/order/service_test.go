package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/juanpineyrob/dscommerce/application/auth"
	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/domain/order"
	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/memory"
)

type fixture struct {
	svc   *Service
	store *memory.Store
	books catalog.Product
	tv    catalog.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.AddUser(user.RebuildFromDTO(user.ReconstructionDTO{
		ID: 5, Name: "Maria Brown", Email: "maria@gmail.com",
		Roles: []user.Role{user.RoleClient},
	}))
	store.AddUser(user.RebuildFromDTO(user.ReconstructionDTO{
		ID: 9, Name: "Alex Green", Email: "alex@gmail.com",
		Roles: []user.Role{user.RoleClient},
	}))
	store.AddUser(user.RebuildFromDTO(user.ReconstructionDTO{
		ID: 1, Name: "Admin", Email: "admin@gmail.com",
		Roles: []user.Role{user.RoleAdmin},
	}))

	books := store.AddProduct(catalog.Product{
		Name:        "The Lord of the Rings",
		Description: "Lorem ipsum dolor sit amet consectetur.",
		Price:       decimal.NewFromFloat(10.0),
	})
	tv := store.AddProduct(catalog.Product{
		Name:        "Smart TV",
		Description: "Lorem ipsum dolor sit amet consectetur.",
		Price:       decimal.NewFromFloat(100.0),
	})

	svc := NewService(
		memory.NewOrderRepository(store),
		memory.NewProductRepository(store),
		memory.NewUserRepository(store),
		auth.NewGate(),
		memory.TxManager{},
	)
	return &fixture{svc: svc, store: store, books: books, tv: tv}
}

func asClient(id int64) context.Context {
	return user.ContextWithPrincipal(context.Background(), user.Principal{
		ID: id, Roles: []user.Role{user.RoleClient},
	})
}

func asAdmin() context.Context {
	return user.ContextWithPrincipal(context.Background(), user.Principal{
		ID: 1, Roles: []user.Role{user.RoleAdmin},
	})
}

func TestService_Insert(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Insert(asClient(5), InsertRequest{Items: []ItemRequest{
		{ProductID: f.books.ID, Quantity: 2},
		{ProductID: f.tv.ID, Quantity: 1},
	}})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if resp.ID == 0 {
		t.Error("Insert() did not assign an id")
	}
	if resp.Status != string(order.StatusWaitingPayment) {
		t.Errorf("Status = %s, want WAITING_PAYMENT", resp.Status)
	}
	if resp.Client.ID != 5 {
		t.Errorf("Client.ID = %d, want the authenticated principal", resp.Client.ID)
	}
	if resp.Client.Name != "Maria Brown" {
		t.Errorf("Client.Name = %s, want Maria Brown", resp.Client.Name)
	}
	if !resp.Total.Equal(decimal.NewFromFloat(120.0)) {
		t.Errorf("Total = %s, want 120", resp.Total)
	}
	if resp.Payment != nil {
		t.Error("a fresh order must not carry a payment")
	}
}

func TestService_InsertSnapshotsPrice(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Insert(asClient(5), InsertRequest{Items: []ItemRequest{
		{ProductID: f.books.ID, Quantity: 2},
	}})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// A later price change must not leak into the existing order.
	changed := f.books
	changed.Price = decimal.NewFromFloat(999.99)
	f.store.AddProduct(changed)

	got, err := f.svc.FindByID(asClient(5), resp.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !got.Items[0].Price.Equal(decimal.NewFromFloat(10.0)) {
		t.Errorf("item price = %s, want the price captured at order time", got.Items[0].Price)
	}
	if !got.Total.Equal(decimal.NewFromFloat(20.0)) {
		t.Errorf("Total = %s, want 20", got.Total)
	}
	if got.Items[0].Name != "The Lord of the Rings" {
		t.Errorf("item name = %s, want the name captured at order time", got.Items[0].Name)
	}
}

func TestService_InsertUnknownProductAbortsAll(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Insert(asClient(5), InsertRequest{Items: []ItemRequest{
		{ProductID: f.books.ID, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	}})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("Insert() error = %v, want ErrNotFound", err)
	}
	if f.store.OrderCount() != 0 {
		t.Error("no partial order may survive a failed insert")
	}
}

func TestService_InsertRejectsBadQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Insert(asClient(5), InsertRequest{Items: []ItemRequest{
		{ProductID: f.books.ID, Quantity: 0},
	}})
	if !errors.Is(err, order.ErrInvalidQuantity) {
		t.Errorf("Insert() error = %v, want ErrInvalidQuantity", err)
	}

	_, err = f.svc.Insert(asClient(5), InsertRequest{})
	if !errors.Is(err, order.ErrEmptyItems) {
		t.Errorf("Insert() error = %v, want ErrEmptyItems", err)
	}
}

func TestService_InsertRequiresPrincipal(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Insert(context.Background(), InsertRequest{Items: []ItemRequest{
		{ProductID: f.books.ID, Quantity: 1},
	}})
	if !errors.Is(err, shared.ErrUnauthenticated) {
		t.Errorf("Insert() error = %v, want ErrUnauthenticated", err)
	}
}

func TestService_FindByIDAuthorization(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Insert(asClient(5), InsertRequest{Items: []ItemRequest{
		{ProductID: f.books.ID, Quantity: 1},
	}})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if _, err := f.svc.FindByID(asClient(5), resp.ID); err != nil {
		t.Errorf("owner read error = %v", err)
	}
	if _, err := f.svc.FindByID(asAdmin(), resp.ID); err != nil {
		t.Errorf("admin read error = %v", err)
	}
	if _, err := f.svc.FindByID(asClient(9), resp.ID); !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("foreign read error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.FindByID(context.Background(), resp.ID); !errors.Is(err, shared.ErrUnauthenticated) {
		t.Errorf("anonymous read error = %v, want ErrUnauthenticated", err)
	}
}

func TestService_FindByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FindByID(asAdmin(), 999)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("FindByID() error = %v, want ErrOrderNotFound", err)
	}
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Insert(asClient(5), InsertRequest{Items: []ItemRequest{
		{ProductID: f.tv.ID, Quantity: 1},
	}})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	paid, err := f.svc.UpdateStatus(asAdmin(), resp.ID, UpdateStatusRequest{Status: "PAID"})
	if err != nil {
		t.Fatalf("UpdateStatus(PAID) error = %v", err)
	}
	if paid.Status != string(order.StatusPaid) {
		t.Errorf("Status = %s, want PAID", paid.Status)
	}
	if paid.Payment == nil {
		t.Error("a paid order must carry its payment")
	}

	shipped, err := f.svc.UpdateStatus(asAdmin(), resp.ID, UpdateStatusRequest{Status: "SHIPPED"})
	if err != nil {
		t.Fatalf("UpdateStatus(SHIPPED) error = %v", err)
	}
	if shipped.Status != string(order.StatusShipped) {
		t.Errorf("Status = %s, want SHIPPED", shipped.Status)
	}

	// Shipped orders cannot be canceled.
	_, err = f.svc.UpdateStatus(asAdmin(), resp.ID, UpdateStatusRequest{Status: "CANCELED"})
	if !errors.Is(err, order.ErrInvalidTransition) {
		t.Errorf("UpdateStatus(CANCELED) error = %v, want ErrInvalidTransition", err)
	}
}

func TestService_UpdateStatusRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Insert(asClient(5), InsertRequest{Items: []ItemRequest{
		{ProductID: f.tv.ID, Quantity: 1},
	}})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// Not even the order's owner may move the status.
	_, err = f.svc.UpdateStatus(asClient(5), resp.ID, UpdateStatusRequest{Status: "PAID"})
	if !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("UpdateStatus() error = %v, want ErrForbidden", err)
	}
}

func TestService_UpdateStatusUnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(asAdmin(), 1, UpdateStatusRequest{Status: "TELEPORTED"})
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("UpdateStatus() error = %v, want ErrInvalidInput", err)
	}
}
