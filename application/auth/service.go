package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
	"github.com/juanpineyrob/dscommerce/infrastructure/security"
	"github.com/juanpineyrob/dscommerce/pkg/logger"
)

// LoginRequest credential login DTO.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse issued access token DTO.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Service credential login use case.
type Service struct {
	userRepo user.Repository
	tokens   *security.TokenManager
}

// NewService creates the auth service.
func NewService(userRepo user.Repository, tokens *security.TokenManager) *Service {
	return &Service{userRepo: userRepo, tokens: tokens}
}

// Login verifies the credentials and issues an access token. An unknown
// email and a wrong password produce the same error so the response does
// not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewUnauthenticatedError()
		}
		return nil, err
	}

	if !security.CheckPassword(u.PasswordHash(), req.Password) {
		logger.Debug("login rejected: password mismatch", zap.String("email", req.Email))
		return nil, shared.NewUnauthenticatedError()
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL() / time.Second),
	}, nil
}
