package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// Event types for the stock context
const (
	EventTypeItemRegistered      = "stock.item.registered"
	EventTypeInventoryAdjusted   = "stock.inventory.adjusted"
	EventTypeMoveApplied         = "stock.move.applied"
	EventTypeStockOrderConfirmed = "stock.order.confirmed"
)

// ItemRegisteredEvent is emitted when a physical item is registered and
// receives its barcode
type ItemRegisteredEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ImportDate  time.Time `json:"import_date"`
	Seq         int       `json:"seq"`
	BarcodeText string    `json:"barcode_text"`
}

// NewItemRegisteredEvent creates a new ItemRegisteredEvent
func NewItemRegisteredEvent(item *Item) *ItemRegisteredEvent {
	return &ItemRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRegistered, "Item", item.ID),
		ProductID:       item.ProductID,
		ImportDate:      item.ImportDate,
		Seq:             item.Seq,
		BarcodeText:     item.BarcodeText,
	}
}

// InventoryAdjustedEvent is emitted when a balance row changes
type InventoryAdjustedEvent struct {
	shared.BaseDomainEvent
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	OldQuantity decimal.Decimal `json:"old_quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Delta       decimal.Decimal `json:"delta"`
}

// NewInventoryAdjustedEvent creates a new InventoryAdjustedEvent
func NewInventoryAdjustedEvent(item *InventoryItem, oldQty, delta decimal.Decimal) *InventoryAdjustedEvent {
	return &InventoryAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryAdjusted, "InventoryItem", item.ID),
		WarehouseID:     item.WarehouseID,
		ProductID:       item.ProductID,
		OldQuantity:     oldQty,
		NewQuantity:     item.Quantity,
		Delta:           delta,
	}
}

// MoveAppliedEvent is emitted after a move has been applied to the ledger
type MoveAppliedEvent struct {
	shared.BaseDomainEvent
	Action      MoveAction      `json:"action"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Itemized    bool            `json:"itemized"`
	BatchID     string          `json:"batch_id,omitempty"`
}

// NewMoveAppliedEvent creates a new MoveAppliedEvent
func NewMoveAppliedEvent(move *Move, productID uuid.UUID) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMoveApplied, "Move", move.ID),
		Action:          move.Action,
		WarehouseID:     move.Warehouse(),
		ProductID:       productID,
		Quantity:        move.Quantity,
		Itemized:        move.IsItemized(),
		BatchID:         move.BatchID,
	}
}

// StockOrderConfirmedEvent is emitted when a stock order confirmation commits
type StockOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderType OrderType   `json:"order_type"`
	Source    OrderSource `json:"source"`
	LineCount int         `json:"line_count"`
	BatchID   string      `json:"batch_id"`
}

// NewStockOrderConfirmedEvent creates a new StockOrderConfirmedEvent
func NewStockOrderConfirmedEvent(order *StockOrder) *StockOrderConfirmedEvent {
	return &StockOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockOrderConfirmed, "StockOrder", order.ID),
		OrderType:       order.OrderType,
		Source:          order.Source,
		LineCount:       len(order.Lines),
		BatchID:         order.BatchID(""),
	}
}
