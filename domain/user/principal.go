package user

import "context"

// Principal is the authenticated identity of the current request.
// It is threaded through call chains as an explicit context value rather
// than looked up from ambient session state, so services stay trivially
// testable with injected principals.
type Principal struct {
	ID    int64
	Email string
	Roles []Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// HasRole reports whether the role is in the principal's set.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type principalKey struct{}

// ContextWithPrincipal attaches the authenticated principal to the context.
// The auth middleware calls this once per request after token verification.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
