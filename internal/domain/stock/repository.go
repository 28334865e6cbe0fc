package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// ItemRepository defines the persistence interface for items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindByIDForUpdate loads an item under an exclusive row lock.
	// Must run inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByBarcode(ctx context.Context, barcode string) (*Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// NextSeq returns max(seq)+1 for the (product, import date) scope, or 1
	// when no items exist yet. It locks the scope's rows so that concurrent
	// callers for the same pair are serialized and receive strictly
	// increasing values. Must run inside a transaction.
	NextSeq(ctx context.Context, productID uuid.UUID, importDate time.Time) (int, error)
	Save(ctx context.Context, item *Item) error
}

// InventoryItemRepository defines the persistence interface for balance rows
type InventoryItemRepository interface {
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*InventoryItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// GetOrCreateLocked returns the balance row for the pair under an
	// exclusive row lock, creating a zero row first when absent. Must run
	// inside a transaction; the lock is held until commit or rollback.
	GetOrCreateLocked(ctx context.Context, warehouseID, productID uuid.UUID) (*InventoryItem, error)
	Save(ctx context.Context, item *InventoryItem) error
}

// MoveRepository defines the persistence interface for the move journal.
// Moves are append-only: there is deliberately no update or delete.
type MoveRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Move, error)
	FindByBatchID(ctx context.Context, batchID string) ([]Move, error)
	List(ctx context.Context, filter MoveFilter, page shared.Filter) ([]Move, error)
	CountByBatchID(ctx context.Context, batchID string) (int64, error)
	Create(ctx context.Context, move *Move) error
}

// StockOrderRepository defines the persistence interface for stock orders
type StockOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockOrder, error)
	// FindByIDForUpdate loads the order and its lines under an exclusive
	// lock on the order row, serializing concurrent confirmations.
	// Must run inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*StockOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *StockOrder) error
}
