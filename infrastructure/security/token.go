// Package security token issuance and password hashing.
package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/domain/user"
)

// Claims JWT payload carried by access tokens.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-signed access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs an access token for the user. The subject is the account id;
// email and roles travel as custom claims.
func (m *TokenManager) Issue(u *user.User) (string, error) {
	now := time.Now()
	roles := make([]string, 0, len(u.Roles()))
	for _, r := range u.Roles() {
		roles = append(roles, string(r))
	}

	claims := Claims{
		Email: u.Email(),
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID(), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the principal it encodes.
// Any parse, signature or expiry failure maps to an authentication error.
func (m *TokenManager) Verify(tokenString string) (user.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return user.Principal{}, shared.NewUnauthenticatedError()
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return user.Principal{}, shared.NewUnauthenticatedError()
	}

	roles := make([]user.Role, 0, len(claims.Roles))
	for _, authority := range claims.Roles {
		if role, ok := user.ParseRole(authority); ok {
			roles = append(roles, role)
		}
	}

	return user.Principal{ID: id, Email: claims.Email, Roles: roles}, nil
}
