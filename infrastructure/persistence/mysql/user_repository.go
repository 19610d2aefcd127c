package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/juanpineyrob/dscommerce/domain/user"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/mysql/po"
)

// UserRepository GORM implementation of the user port.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID loads the user with their granted authorities.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	db := r.getDB(ctx)

	var userPO po.UserPO
	if err := db.First(&userPO, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return r.withRoles(db, &userPO)
}

// FindByEmail loads the user by their login name.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	db := r.getDB(ctx)

	var userPO po.UserPO
	if err := db.First(&userPO, "email = ?", email).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return r.withRoles(db, &userPO)
}

func (r *UserRepository) withRoles(db *gorm.DB, userPO *po.UserPO) (*user.User, error) {
	var authorities []string
	err := db.Model(&po.RolePO{}).
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userPO.ID).
		Pluck("roles.authority", &authorities).Error
	if err != nil {
		return nil, err
	}
	return userPO.ToDomain(authorities), nil
}

var _ user.Repository = (*UserRepository)(nil)
