// Package auth authentication and authorization use cases: credential
// login and the self-or-admin access gate.
package auth

import (
	"context"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
)

// Gate authorization checks evaluated against the principal carried by the
// request context.
type Gate struct{}

// NewGate creates an authorization gate.
func NewGate() *Gate {
	return &Gate{}
}

// ValidateSelfOrAdmin allows the call when the principal is an admin or
// when the principal is the target user. Admin is checked first so an
// admin inspecting their own data passes on the role alone.
func (g *Gate) ValidateSelfOrAdmin(ctx context.Context, targetUserID int64) error {
	principal, ok := user.PrincipalFromContext(ctx)
	if !ok {
		return shared.NewUnauthenticatedError()
	}
	if principal.IsAdmin() {
		return nil
	}
	if principal.ID == targetUserID {
		return nil
	}
	return shared.NewForbiddenError()
}

// RequireAdmin allows the call only for principals holding the admin role.
func (g *Gate) RequireAdmin(ctx context.Context) error {
	principal, ok := user.PrincipalFromContext(ctx)
	if !ok {
		return shared.NewUnauthenticatedError()
	}
	if !principal.IsAdmin() {
		return shared.NewForbiddenError()
	}
	return nil
}
