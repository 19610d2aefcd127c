package mysql

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/mysql/po"
)

// foreignKey declarative FK definition applied after AutoMigrate. GORM
// associations are not used, so the constraints that the domain relies on
// are created explicitly here.
type foreignKey struct {
	name     string
	table    string
	column   string
	refTable string
	onDelete string
}

var foreignKeys = []foreignKey{
	// Deleting a product referenced by order items must fail, not cascade.
	{"fk_order_items_product", "order_items", "product_id", "products", "RESTRICT"},
	// Items are owned by their order and die with it.
	{"fk_order_items_order", "order_items", "order_id", "orders", "CASCADE"},
	{"fk_payments_order", "payments", "order_id", "orders", "CASCADE"},
	{"fk_orders_client", "orders", "client_id", "users", "RESTRICT"},
	{"fk_product_categories_product", "product_categories", "product_id", "products", "CASCADE"},
	{"fk_product_categories_category", "product_categories", "category_id", "categories", "RESTRICT"},
	{"fk_user_roles_user", "user_roles", "user_id", "users", "CASCADE"},
	{"fk_user_roles_role", "user_roles", "role_id", "roles", "RESTRICT"},
}

// Migrate creates the schema and its foreign keys. Intended for development
// environments; production schemas are managed externally.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&po.CategoryPO{},
		&po.ProductPO{},
		&po.ProductCategoryPO{},
		&po.UserPO{},
		&po.RolePO{},
		&po.UserRolePO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.PaymentPO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	for _, fk := range foreignKeys {
		if err := ensureForeignKey(db, fk); err != nil {
			return err
		}
	}
	return nil
}

func ensureForeignKey(db *gorm.DB, fk foreignKey) error {
	var count int64
	err := db.Raw(
		`SELECT COUNT(*) FROM information_schema.TABLE_CONSTRAINTS
		 WHERE CONSTRAINT_SCHEMA = DATABASE() AND TABLE_NAME = ? AND CONSTRAINT_NAME = ?`,
		fk.table, fk.name,
	).Scan(&count).Error
	if err != nil {
		return fmt.Errorf("failed to inspect constraint %s: %w", fk.name, err)
	}
	if count > 0 {
		return nil
	}

	stmt := fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (id) ON DELETE %s",
		fk.table, fk.name, fk.column, fk.refTable, fk.onDelete,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create constraint %s: %w", fk.name, err)
	}
	return nil
}
