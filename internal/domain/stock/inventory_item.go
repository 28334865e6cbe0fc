package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// InventoryItem is the current quantity of a product at a warehouse.
// It is the aggregate root for balance adjustments and the materialized view
// over the append-only move journal: for any sequence of applied moves whose
// running balance never goes negative, Quantity equals the sum of all deltas.
type InventoryItem struct {
	shared.BaseAggregateRoot
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_warehouse_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_warehouse_product,priority:2"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a zero-quantity balance row for a
// warehouse-product combination. Rows are created lazily on first adjustment
// and never deleted in normal operation.
func NewInventoryItem(warehouseID, productID uuid.UUID) (*InventoryItem, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		ProductID:         productID,
		Quantity:          decimal.Zero,
	}, nil
}

// Adjust applies a signed delta to the balance and returns the new quantity.
//
// A delta that would drive the balance negative is rejected with
// INSUFFICIENT_STOCK and nothing is mutated. This is the single
// system-wide policy for negative balances; there is no clamping variant.
func (i *InventoryItem) Adjust(delta decimal.Decimal) (decimal.Decimal, error) {
	if delta.IsZero() {
		return i.Quantity, nil
	}

	newQty := i.Quantity.Add(delta)
	if newQty.IsNegative() {
		return i.Quantity, shared.ErrInsufficientStock
	}

	oldQty := i.Quantity
	i.Quantity = newQty
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInventoryAdjustedEvent(i, oldQty, delta))

	return newQty, nil
}
