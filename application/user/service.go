// Package user Application layer for the signed-in account: resolving the
// authenticated user and the profile projection.
package user

import (
	"context"
	"time"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
)

// UserResponse account projection. The password hash never leaves the
// domain layer.
type UserResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	BirthDate string   `json:"birthDate"`
	Roles     []string `json:"roles"`
}

// Service signed-in account use cases.
type Service struct {
	userRepo user.Repository
}

// NewService creates the user service.
func NewService(userRepo user.Repository) *Service {
	return &Service{userRepo: userRepo}
}

// Authenticated loads the full account behind the request's principal.
func (s *Service) Authenticated(ctx context.Context) (*user.User, error) {
	principal, ok := user.PrincipalFromContext(ctx)
	if !ok {
		return nil, shared.NewUnauthenticatedError()
	}
	return s.userRepo.FindByID(ctx, principal.ID)
}

// GetMe returns the profile of the signed-in user.
func (s *Service) GetMe(ctx context.Context) (*UserResponse, error) {
	u, err := s.Authenticated(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

func toUserResponse(u *user.User) *UserResponse {
	roles := make([]string, 0, len(u.Roles()))
	for _, r := range u.Roles() {
		roles = append(roles, string(r))
	}

	birthDate := ""
	if !u.BirthDate().IsZero() {
		birthDate = u.BirthDate().Format(time.DateOnly)
	}

	return &UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		BirthDate: birthDate,
		Roles:     roles,
	}
}
