package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/memory"
	"github.com/juanpineyrob/dscommerce/infrastructure/security"
)

func newLoginService(t *testing.T) *Service {
	t.Helper()

	hash, err := security.HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	store := memory.NewStore()
	store.AddUser(user.RebuildFromDTO(user.ReconstructionDTO{
		ID:           1,
		Name:         "Maria Brown",
		Email:        "maria@gmail.com",
		PasswordHash: hash,
		Roles:        []user.Role{user.RoleClient},
	}))

	tokens := security.NewTokenManager("test-secret", time.Hour)
	return NewService(memory.NewUserRepository(store), tokens)
}

func TestService_Login(t *testing.T) {
	svc := newLoginService(t)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "maria@gmail.com",
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("Login() returned an empty token")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("TokenType = %s, want Bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want 3600", resp.ExpiresIn)
	}
}

func TestService_LoginWrongPassword(t *testing.T) {
	svc := newLoginService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "maria@gmail.com",
		Password: "wrong",
	})
	if !errors.Is(err, shared.ErrUnauthenticated) {
		t.Errorf("Login() error = %v, want ErrUnauthenticated", err)
	}
}

func TestService_LoginUnknownEmail(t *testing.T) {
	svc := newLoginService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@gmail.com",
		Password: "123456",
	})
	// Unknown accounts and bad passwords are indistinguishable.
	if !errors.Is(err, shared.ErrUnauthenticated) {
		t.Errorf("Login() error = %v, want ErrUnauthenticated", err)
	}
}
