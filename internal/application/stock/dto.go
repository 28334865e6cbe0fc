package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/stock"
)

// CreateItemRequest registers one physical unit into the system
type CreateItemRequest struct {
	ProductID   uuid.UUID
	ImportDate  time.Time
	WarehouseID *uuid.UUID // nil means not currently located
}

// ItemResponse represents an item in service responses
type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	ImportDate  time.Time  `json:"import_date"`
	Seq         int        `json:"seq"`
	BarcodeText string     `json:"barcode_text"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toItemResponse(item *stock.Item) *ItemResponse {
	return &ItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ImportDate:  item.ImportDate,
		Seq:         item.Seq,
		BarcodeText: item.BarcodeText,
		WarehouseID: item.WarehouseID,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
	}
}

// CreateMoveRequest creates and applies a single stock movement.
// Exactly one of ItemID or (ProductID, Quantity) must be set.
type CreateMoveRequest struct {
	Action          stock.MoveAction
	ItemID          *uuid.UUID
	ProductID       *uuid.UUID
	Quantity        decimal.Decimal
	FromWarehouseID *uuid.UUID
	ToWarehouseID   *uuid.UUID
	TypeAction      string
	Note            string
	CreatedBy       string
	BatchID         string
	Tag             int64
}

func (r CreateMoveRequest) addressing() stock.Addressing {
	if r.ItemID != nil && r.ProductID == nil {
		return stock.ItemAddressing(*r.ItemID)
	}
	if r.ProductID != nil && r.ItemID == nil {
		return stock.BulkAddressing(*r.ProductID, r.Quantity)
	}
	// Both or neither set: let Validate report the addressing violation
	return stock.Addressing{ItemID: r.ItemID, ProductID: r.ProductID, Quantity: r.Quantity}
}

// MoveResponse represents an applied move in service responses
type MoveResponse struct {
	ID              uuid.UUID       `json:"id"`
	Action          string          `json:"action"`
	ItemID          *uuid.UUID      `json:"item_id,omitempty"`
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	FromWarehouseID *uuid.UUID      `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   *uuid.UUID      `json:"to_warehouse_id,omitempty"`
	TypeAction      string          `json:"type_action,omitempty"`
	Note            string          `json:"note,omitempty"`
	CreatedBy       string          `json:"created_by,omitempty"`
	BatchID         string          `json:"batch_id,omitempty"`
	Tag             int64           `json:"tag,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toMoveResponse(move *stock.Move, productID uuid.UUID) *MoveResponse {
	return &MoveResponse{
		ID:              move.ID,
		Action:          move.Action.String(),
		ItemID:          move.ItemID,
		ProductID:       productID,
		Quantity:        move.Quantity,
		FromWarehouseID: move.FromWarehouseID,
		ToWarehouseID:   move.ToWarehouseID,
		TypeAction:      move.TypeAction,
		Note:            move.Note,
		CreatedBy:       move.CreatedBy,
		BatchID:         move.BatchID,
		Tag:             move.Tag,
		CreatedAt:       move.CreatedAt,
	}
}

func journalMoveResponse(move *stock.Move) *MoveResponse {
	var productID uuid.UUID
	if move.ProductID != nil {
		productID = *move.ProductID
	}
	return toMoveResponse(move, productID)
}

// InventoryResponse represents a balance row in service responses
type InventoryResponse struct {
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toInventoryResponse(item *stock.InventoryItem) *InventoryResponse {
	return &InventoryResponse{
		WarehouseID: item.WarehouseID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		UpdatedAt:   item.UpdatedAt,
	}
}

// OrderLineRequest is one line of a stock order creation request.
// Exactly one of ItemID or (ProductID, Quantity) must be set.
type OrderLineRequest struct {
	ItemID    *uuid.UUID
	ProductID *uuid.UUID
	Quantity  decimal.Decimal
}

// CreateStockOrderRequest creates a draft stock order with its lines
type CreateStockOrderRequest struct {
	OrderType       stock.OrderType
	Source          stock.OrderSource
	FromWarehouseID *uuid.UUID
	ToWarehouseID   *uuid.UUID
	Note            string
	CreatedBy       string
	Lines           []OrderLineRequest
}

// OrderLineResponse represents a stock order line in service responses
type OrderLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    *uuid.UUID      `json:"item_id,omitempty"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// StockOrderResponse represents a stock order in service responses
type StockOrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderType       string              `json:"order_type"`
	Source          string              `json:"source"`
	FromWarehouseID *uuid.UUID          `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   *uuid.UUID          `json:"to_warehouse_id,omitempty"`
	Note            string              `json:"note,omitempty"`
	CreatedBy       string              `json:"created_by,omitempty"`
	IsConfirmed     bool                `json:"is_confirmed"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	Lines           []OrderLineResponse `json:"lines"`
	CreatedAt       time.Time           `json:"created_at"`
}

func toStockOrderResponse(order *stock.StockOrder) *StockOrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ID:        line.ID,
			ItemID:    line.ItemID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return &StockOrderResponse{
		ID:              order.ID,
		OrderType:       string(order.OrderType),
		Source:          string(order.Source),
		FromWarehouseID: order.FromWarehouseID,
		ToWarehouseID:   order.ToWarehouseID,
		Note:            order.Note,
		CreatedBy:       order.CreatedBy,
		IsConfirmed:     order.IsConfirmed,
		ConfirmedAt:     order.ConfirmedAt,
		Lines:           lines,
		CreatedAt:       order.CreatedAt,
	}
}
