package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/juanpineyrob/dscommerce/domain/shared"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence"
)

// TxManager runs service operations inside a single GORM transaction.
// The transaction travels in the context; repositories pick it up through
// persistence.TxFromContext, so one failure rolls back every write of the
// operation.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Execute implements shared.TxManager.
func (m *TxManager) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(persistence.ContextWithTx(ctx, tx))
	})
}

var _ shared.TxManager = (*TxManager)(nil)
