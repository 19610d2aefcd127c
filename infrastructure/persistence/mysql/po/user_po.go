package po

import (
	"time"

	"github.com/juanpineyrob/dscommerce/domain/user"
)

// UserPO user row. The email is the unique login name.
type UserPO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:120;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Phone     string    `gorm:"size:30"`
	BirthDate time.Time `gorm:""`
	Password  string    `gorm:"size:255;not null"` // bcrypt hash
}

func (UserPO) TableName() string { return "users" }

// RolePO role row.
type RolePO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Authority string `gorm:"size:60;uniqueIndex;not null"`
}

func (RolePO) TableName() string { return "roles" }

// UserRolePO user/role link row.
type UserRolePO struct {
	UserID int64 `gorm:"primaryKey"`
	RoleID int64 `gorm:"primaryKey"`
}

func (UserRolePO) TableName() string { return "user_roles" }

// ToDomain reconstructs the user aggregate. Authority names that do not map
// onto the role enumeration are dropped.
func (p *UserPO) ToDomain(authorities []string) *user.User {
	roles := make([]user.Role, 0, len(authorities))
	for _, a := range authorities {
		if role, ok := user.ParseRole(a); ok {
			roles = append(roles, role)
		}
	}
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		BirthDate:    p.BirthDate,
		PasswordHash: p.Password,
		Roles:        roles,
	})
}
