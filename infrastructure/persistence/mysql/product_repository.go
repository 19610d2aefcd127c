package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/mysql/po"
)

// ProductRepository GORM implementation of the product port.
// Category links are managed manually, not through GORM associations.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// getDB returns the transaction from context if present, otherwise the
// default handle.
func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID loads the product and resolves its category list.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	db := r.getDB(ctx)

	var productPO po.ProductPO
	if err := db.First(&productPO, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "product")
	}

	categories, err := r.categoriesOf(db, id)
	if err != nil {
		return nil, err
	}

	return productPO.ToDomain(categories), nil
}

func (r *ProductRepository) categoriesOf(db *gorm.DB, productID int64) ([]catalog.Category, error) {
	var categoryPOs []po.CategoryPO
	err := db.
		Joins("JOIN product_categories pc ON pc.category_id = categories.id").
		Where("pc.product_id = ?", productID).
		Order("categories.id").
		Find(&categoryPOs).Error
	if err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, len(categoryPOs))
	for i, c := range categoryPOs {
		categories[i] = c.ToDomain()
	}
	return categories, nil
}

// sortColumns whitelist for the pass-through sort parameter.
var sortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
}

// SearchByName performs a case-insensitive substring match on the product
// name. Results omit descriptions and categories; listings only need the
// minimal projection.
func (r *ProductRepository) SearchByName(ctx context.Context, name string, page catalog.PageRequest) (*catalog.Page[catalog.Product], error) {
	db := r.getDB(ctx)

	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = 12
	}

	query := db.Model(&po.ProductPO{})
	if name != "" {
		query = query.Where("UPPER(name) LIKE UPPER(?)", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	order := "id"
	if col, ok := sortColumns[page.Sort]; ok {
		order = col
	}

	var productPOs []po.ProductPO
	err := query.
		Select("id", "name", "price", "img_url").
		Order(order).
		Offset(page.Page * page.Size).
		Limit(page.Size).
		Find(&productPOs).Error
	if err != nil {
		return nil, err
	}

	content := make([]catalog.Product, len(productPOs))
	for i, p := range productPOs {
		content[i] = *p.ToDomain(nil)
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return &catalog.Page[catalog.Product]{
		Content:    content,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Save inserts or updates the product and rebuilds its category links
// (clear-then-rebuild, not merge). The two writes run in one transaction
// unless the caller already opened one.
func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, product)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, product)
	})
}

func (r *ProductRepository) saveWithTx(tx *gorm.DB, product *catalog.Product) error {
	productPO, _ := po.FromProductDomain(product)

	if err := tx.Save(productPO).Error; err != nil {
		return translateError(err, "product")
	}
	// Propagate the generated identity before building link rows.
	product.ID = productPO.ID

	if err := tx.Where("product_id = ?", productPO.ID).Delete(&po.ProductCategoryPO{}).Error; err != nil {
		return translateError(err, "product")
	}

	_, links := po.FromProductDomain(product)
	if len(links) > 0 {
		if err := tx.Create(&links).Error; err != nil {
			return translateError(err, "product")
		}
	}
	return nil
}

// DeleteByID removes the product and its category links. A foreign-key
// violation from dependent order items surfaces as shared.ErrIntegrity.
// Deliberately not wrapped in an enclosing transaction; the caller's
// existence pre-check and this delete run as independent statements.
func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	db := r.getDB(ctx)

	result := db.Delete(&po.ProductPO{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "product")
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("product")
	}

	if err := db.Where("product_id = ?", id).Delete(&po.ProductCategoryPO{}).Error; err != nil {
		return fmt.Errorf("failed to delete category links: %w", err)
	}
	return nil
}

// ExistsByID reports whether the product id exists.
func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.Repository = (*ProductRepository)(nil)

// CategoryRepository GORM implementation of the category port.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindAll returns every category ordered by id.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categoryPOs []po.CategoryPO
	if err := r.getDB(ctx).Order("id").Find(&categoryPOs).Error; err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, len(categoryPOs))
	for i, c := range categoryPOs {
		categories[i] = c.ToDomain()
	}
	return categories, nil
}

// ExistsByID reports whether the category id exists.
func (r *CategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.CategoryPO{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.CategoryRepository = (*CategoryRepository)(nil)
