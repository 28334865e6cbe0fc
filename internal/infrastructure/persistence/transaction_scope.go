package persistence

import (
	"context"

	appstock "github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Products returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Items returns the item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Items() stock.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// Inventory returns the balance-row repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Inventory() stock.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// Moves returns the move journal repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Moves() stock.MoveRepository {
	return NewGormMoveRepository(r.tx)
}

// Orders returns the stock order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Orders() stock.StockOrderRepository {
	return NewGormStockOrderRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appstock.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appstock.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
