// Package user User subdomain: account data, granted roles and the
// authenticated principal used by authorization checks.
package user

import (
	"time"
)

// Role is a granted capability. Roles are a closed enumeration, not
// free-form authority strings, so authorization checks are set-membership
// tests instead of string comparisons.
type Role string

const (
	RoleClient Role = "ROLE_CLIENT"
	RoleAdmin  Role = "ROLE_ADMIN"
)

// ParseRole maps a stored authority name onto the enumeration.
func ParseRole(authority string) (Role, bool) {
	switch Role(authority) {
	case RoleClient:
		return RoleClient, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User account aggregate. Fields are private; state is exposed through
// read-only accessors.
type User struct {
	id           int64
	name         string
	email        string
	phone        string
	birthDate    time.Time
	passwordHash string
	roles        []Role
}

// ReconstructionDTO rebuilds a User from persisted state.
// Repository-layer use only.
type ReconstructionDTO struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	BirthDate    time.Time
	PasswordHash string
	Roles        []Role
}

// RebuildFromDTO reconstructs a User aggregate from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *User {
	roles := make([]Role, len(dto.Roles))
	copy(roles, dto.Roles)
	return &User{
		id:           dto.ID,
		name:         dto.Name,
		email:        dto.Email,
		phone:        dto.Phone,
		birthDate:    dto.BirthDate,
		passwordHash: dto.PasswordHash,
		roles:        roles,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Phone() string        { return u.phone }
func (u *User) BirthDate() time.Time { return u.birthDate }
func (u *User) PasswordHash() string { return u.passwordHash }

// Roles returns a copy of the granted role set.
func (u *User) Roles() []Role {
	roles := make([]Role, len(u.roles))
	copy(roles, u.roles)
	return roles
}

// HasRole reports whether the role is in the granted set.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Principal derives the authenticated principal from this account.
func (u *User) Principal() Principal {
	return Principal{ID: u.id, Email: u.email, Roles: u.Roles()}
}
