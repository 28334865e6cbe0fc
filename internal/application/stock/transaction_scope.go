package stock

import (
	"context"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Row locks taken inside the scope are held until the scope
// ends.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Items returns the item repository scoped to the current transaction
	Items() stock.ItemRepository
	// Inventory returns the balance-row repository scoped to the current transaction
	Inventory() stock.InventoryItemRepository
	// Moves returns the append-only move repository scoped to the current transaction
	Moves() stock.MoveRepository
	// Orders returns the stock order repository scoped to the current transaction
	Orders() stock.StockOrderRepository
}

// NoOpTransactionScope is a transaction scope without real transactions.
// It exists for tests; the locking repositories it wraps must serialize
// access themselves.
type NoOpTransactionScope struct {
	productRepo   catalog.ProductRepository
	itemRepo      stock.ItemRepository
	inventoryRepo stock.InventoryItemRepository
	moveRepo      stock.MoveRepository
	orderRepo     stock.StockOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	itemRepo stock.ItemRepository,
	inventoryRepo stock.InventoryItemRepository,
	moveRepo stock.MoveRepository,
	orderRepo stock.StockOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:   productRepo,
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		moveRepo:      moveRepo,
		orderRepo:     orderRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

// Items returns the item repository.
func (s *NoOpTransactionScope) Items() stock.ItemRepository {
	return s.itemRepo
}

// Inventory returns the balance-row repository.
func (s *NoOpTransactionScope) Inventory() stock.InventoryItemRepository {
	return s.inventoryRepo
}

// Moves returns the move repository.
func (s *NoOpTransactionScope) Moves() stock.MoveRepository {
	return s.moveRepo
}

// Orders returns the stock order repository.
func (s *NoOpTransactionScope) Orders() stock.StockOrderRepository {
	return s.orderRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
