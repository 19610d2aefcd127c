package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
)

func ctxWithPrincipal(id int64, roles ...user.Role) context.Context {
	return user.ContextWithPrincipal(context.Background(), user.Principal{
		ID:    id,
		Email: "someone@example.com",
		Roles: roles,
	})
}

func TestGate_ValidateSelfOrAdmin(t *testing.T) {
	gate := NewGate()

	tests := []struct {
		name     string
		ctx      context.Context
		targetID int64
		wantErr  error
	}{
		{
			name:     "self access allowed",
			ctx:      ctxWithPrincipal(5, user.RoleClient),
			targetID: 5,
			wantErr:  nil,
		},
		{
			name:     "admin may access anyone",
			ctx:      ctxWithPrincipal(1, user.RoleAdmin),
			targetID: 9,
			wantErr:  nil,
		},
		{
			name:     "client blocked from other user",
			ctx:      ctxWithPrincipal(5, user.RoleClient),
			targetID: 9,
			wantErr:  shared.ErrForbidden,
		},
		{
			name:     "no principal",
			ctx:      context.Background(),
			targetID: 5,
			wantErr:  shared.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.ValidateSelfOrAdmin(tt.ctx, tt.targetID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateSelfOrAdmin() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateSelfOrAdmin() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGate_RequireAdmin(t *testing.T) {
	gate := NewGate()

	if err := gate.RequireAdmin(ctxWithPrincipal(1, user.RoleAdmin)); err != nil {
		t.Errorf("RequireAdmin() with admin role error = %v", err)
	}
	if err := gate.RequireAdmin(ctxWithPrincipal(5, user.RoleClient)); !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("RequireAdmin() with client role error = %v, want ErrForbidden", err)
	}
	if err := gate.RequireAdmin(context.Background()); !errors.Is(err, shared.ErrUnauthenticated) {
		t.Errorf("RequireAdmin() without principal error = %v, want ErrUnauthenticated", err)
	}
}
