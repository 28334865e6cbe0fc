package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// OrderType represents the direction of a stock order
type OrderType string

const (
	OrderTypeIn  OrderType = "IN"
	OrderTypeOut OrderType = "OUT"
)

// IsValid returns true if the order type is valid
func (t OrderType) IsValid() bool {
	return t == OrderTypeIn || t == OrderTypeOut
}

// Action returns the move action corresponding to the order type
func (t OrderType) Action() MoveAction {
	return MoveAction(t)
}

// OrderSource represents where a stock order originated
type OrderSource string

const (
	OrderSourceManual OrderSource = "MANUAL"
	OrderSourceSheet  OrderSource = "SHEET"
	OrderSourceAPI    OrderSource = "API"
)

// IsValid returns true if the order source is valid
func (s OrderSource) IsValid() bool {
	switch s {
	case OrderSourceManual, OrderSourceSheet, OrderSourceAPI:
		return true
	}
	return false
}

// StockOrderLine is one line of a stock order. Like a move, a line addresses
// exactly one item (quantity 1) or a product with a quantity.
type StockOrderLine struct {
	shared.BaseEntity
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Addressing `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (StockOrderLine) TableName() string {
	return "stock_order_lines"
}

// StockOrder groups one or more lines into a single all-or-nothing
// confirmation. Orders are created as drafts; Confirm is terminal and
// idempotent. Every move produced by one confirmation shares a batch ID.
type StockOrder struct {
	shared.BaseAggregateRoot
	OrderType       OrderType   `gorm:"type:varchar(10);not null;index"`
	Source          OrderSource `gorm:"type:varchar(10);not null"`
	FromWarehouseID *uuid.UUID  `gorm:"type:uuid"`
	ToWarehouseID   *uuid.UUID  `gorm:"type:uuid"`
	Note            string      `gorm:"type:text"`
	CreatedBy       string      `gorm:"type:varchar(100)"`
	IsConfirmed     bool        `gorm:"not null;default:false;index"`
	ConfirmedAt     *time.Time
	Lines           []StockOrderLine `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (StockOrder) TableName() string {
	return "stock_orders"
}

// NewStockOrder creates a draft stock order. IN orders need a destination
// warehouse, OUT orders a source warehouse; the other side is ignored when
// deriving moves.
func NewStockOrder(orderType OrderType, source OrderSource, fromWarehouseID, toWarehouseID *uuid.UUID, note, createdBy string) (*StockOrder, error) {
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER_TYPE", "Order type must be IN or OUT")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER_SOURCE", "Order source must be MANUAL, SHEET or API")
	}
	switch orderType {
	case OrderTypeIn:
		if toWarehouseID == nil || *toWarehouseID == uuid.Nil {
			return nil, shared.NewDomainError("MISSING_WAREHOUSE", "IN orders require a destination warehouse")
		}
	case OrderTypeOut:
		if fromWarehouseID == nil || *fromWarehouseID == uuid.Nil {
			return nil, shared.NewDomainError("MISSING_WAREHOUSE", "OUT orders require a source warehouse")
		}
	}

	return &StockOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderType:         orderType,
		Source:            source,
		FromWarehouseID:   fromWarehouseID,
		ToWarehouseID:     toWarehouseID,
		Note:              note,
		CreatedBy:         createdBy,
		Lines:             make([]StockOrderLine, 0),
	}, nil
}

// AddItemLine appends an itemized line to a draft order
func (o *StockOrder) AddItemLine(itemID uuid.UUID) error {
	return o.addLine(ItemAddressing(itemID))
}

// AddBulkLine appends a bulk line to a draft order
func (o *StockOrder) AddBulkLine(productID uuid.UUID, quantity decimal.Decimal) error {
	return o.addLine(BulkAddressing(productID, quantity))
}

func (o *StockOrder) addLine(addressing Addressing) error {
	if o.IsConfirmed {
		return shared.NewDomainError("ORDER_ALREADY_CONFIRMED", "Lines cannot be edited after confirmation")
	}
	if err := addressing.Validate(); err != nil {
		return err
	}
	o.Lines = append(o.Lines, StockOrderLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		Addressing: addressing,
	})
	o.UpdatedAt = time.Now()
	return nil
}

// BatchID returns the correlation key shared by all moves produced by one
// confirmation: the override when given, otherwise "ORDER-<id>".
func (o *StockOrder) BatchID(override string) string {
	if override != "" {
		return override
	}
	return fmt.Sprintf("ORDER-%s", o.ID)
}

// BuildMove constructs the move a line produces on confirmation. The
// warehouses come from the order defaults according to the order type; the
// line contributes only its addressing. The move is validated before return,
// so a structurally broken line fails here, before anything is applied.
func (o *StockOrder) BuildMove(line StockOrderLine, batchID string) (*Move, error) {
	var fromWh, toWh *uuid.UUID
	switch o.OrderType {
	case OrderTypeIn:
		toWh = o.ToWarehouseID
	case OrderTypeOut:
		fromWh = o.FromWarehouseID
	}

	return NewMove(o.OrderType.Action(), line.Addressing, fromWh, toWh, MoveMeta{
		TypeAction: string(o.Source),
		Note:       o.Note,
		CreatedBy:  o.CreatedBy,
		BatchID:    batchID,
	})
}

// MarkConfirmed transitions the order to its terminal confirmed state
func (o *StockOrder) MarkConfirmed(at time.Time) error {
	if o.IsConfirmed {
		return shared.NewDomainError("ORDER_ALREADY_CONFIRMED", "Order is already confirmed")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order has no lines to confirm")
	}
	o.IsConfirmed = true
	o.ConfirmedAt = &at
	o.UpdatedAt = at
	o.IncrementVersion()

	o.AddDomainEvent(NewStockOrderConfirmedEvent(o))

	return nil
}
