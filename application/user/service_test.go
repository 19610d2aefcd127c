package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/memory"
)

func newUserService(t *testing.T) *Service {
	t.Helper()

	store := memory.NewStore()
	store.AddUser(user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        5,
		Name:      "Maria Brown",
		Email:     "maria@gmail.com",
		Phone:     "988888888",
		BirthDate: time.Date(2001, 7, 25, 0, 0, 0, 0, time.UTC),
		Roles:     []user.Role{user.RoleClient},
	}))
	return NewService(memory.NewUserRepository(store))
}

func TestService_GetMe(t *testing.T) {
	svc := newUserService(t)

	ctx := user.ContextWithPrincipal(context.Background(), user.Principal{
		ID: 5, Email: "maria@gmail.com", Roles: []user.Role{user.RoleClient},
	})

	me, err := svc.GetMe(ctx)
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if me.ID != 5 || me.Name != "Maria Brown" || me.Email != "maria@gmail.com" {
		t.Errorf("GetMe() = %+v", me)
	}
	if me.BirthDate != "2001-07-25" {
		t.Errorf("BirthDate = %s, want 2001-07-25", me.BirthDate)
	}
	if len(me.Roles) != 1 || me.Roles[0] != "ROLE_CLIENT" {
		t.Errorf("Roles = %v, want [ROLE_CLIENT]", me.Roles)
	}
}

func TestService_GetMeUnauthenticated(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.GetMe(context.Background())
	if !errors.Is(err, shared.ErrUnauthenticated) {
		t.Errorf("GetMe() error = %v, want ErrUnauthenticated", err)
	}
}

func TestService_AuthenticatedStaleToken(t *testing.T) {
	svc := newUserService(t)

	// A valid token whose account no longer exists.
	ctx := user.ContextWithPrincipal(context.Background(), user.Principal{
		ID: 42, Roles: []user.Role{user.RoleClient},
	})

	_, err := svc.Authenticated(ctx)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("Authenticated() error = %v, want ErrNotFound", err)
	}
}
