package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// MoveAction represents the direction of a stock movement
type MoveAction string

const (
	// MoveActionIn moves stock into a destination warehouse.
	MoveActionIn MoveAction = "IN"
	// MoveActionOut moves stock out of a source warehouse.
	MoveActionOut MoveAction = "OUT"
)

// IsValid returns true if the action is a valid MoveAction
func (a MoveAction) IsValid() bool {
	return a == MoveActionIn || a == MoveActionOut
}

// String returns the string representation of MoveAction
func (a MoveAction) String() string {
	return string(a)
}

// Addressing identifies what a move (or order line) targets. Exactly one of
// the two modes holds: itemized (one physical item, implicit quantity 1) or
// bulk (a product and a positive quantity). Use the ItemAddressing and
// BulkAddressing constructors; the zero value fails validation.
type Addressing struct {
	ItemID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// ItemAddressing addresses exactly one physical item (quantity 1).
func ItemAddressing(itemID uuid.UUID) Addressing {
	return Addressing{ItemID: &itemID, Quantity: decimal.NewFromInt(1)}
}

// BulkAddressing addresses a product and quantity with no specific item.
func BulkAddressing(productID uuid.UUID, quantity decimal.Decimal) Addressing {
	return Addressing{ProductID: &productID, Quantity: quantity}
}

// IsItemized returns true for item-addressed moves/lines
func (a Addressing) IsItemized() bool {
	return a.ItemID != nil
}

// Validate enforces the exactly-one-mode invariant
func (a Addressing) Validate() error {
	itemSet := a.ItemID != nil && *a.ItemID != uuid.Nil
	bulkSet := a.ProductID != nil && *a.ProductID != uuid.Nil

	switch {
	case itemSet && bulkSet:
		return shared.NewDomainError("CONFLICTING_ADDRESSING", "Item and product/quantity addressing are mutually exclusive")
	case !itemSet && !bulkSet:
		return shared.NewDomainError("MISSING_ADDRESSING", "Either an item or a product with quantity is required")
	case bulkSet && !a.Quantity.IsPositive():
		return shared.NewDomainError("MISSING_ADDRESSING", "Bulk addressing requires a positive quantity")
	}
	return nil
}

// MoveMeta carries the descriptive fields of a movement
type MoveMeta struct {
	TypeAction string
	Note       string
	CreatedBy  string
	BatchID    string
	Tag        int64
}

// Move is an immutable, append-only stock movement record. Once created and
// applied it is never mutated or deleted; InventoryItem is the materialized
// view over the move journal.
type Move struct {
	shared.BaseEntity
	Action          MoveAction `gorm:"type:varchar(10);not null;index"`
	Addressing      `gorm:"embedded"`
	FromWarehouseID *uuid.UUID `gorm:"type:uuid;index"`
	ToWarehouseID   *uuid.UUID `gorm:"type:uuid;index"`
	TypeAction      string     `gorm:"type:varchar(50);index"`
	Note            string     `gorm:"type:text"`
	CreatedBy       string     `gorm:"type:varchar(100)"`
	BatchID         string     `gorm:"type:varchar(100);index"`
	Tag             int64      `gorm:"index"`
}

// TableName returns the table name for GORM
func (Move) TableName() string {
	return "moves"
}

// NewMove creates a movement record. Validation runs here, before any
// mutation: the returned move is structurally sound or nil.
func NewMove(action MoveAction, addressing Addressing, fromWarehouseID, toWarehouseID *uuid.UUID, meta MoveMeta) (*Move, error) {
	move := &Move{
		BaseEntity:      shared.NewBaseEntity(),
		Action:          action,
		Addressing:      addressing,
		FromWarehouseID: fromWarehouseID,
		ToWarehouseID:   toWarehouseID,
		TypeAction:      meta.TypeAction,
		Note:            meta.Note,
		CreatedBy:       meta.CreatedBy,
		BatchID:         meta.BatchID,
		Tag:             meta.Tag,
	}

	if err := move.Validate(); err != nil {
		return nil, err
	}

	return move, nil
}

// Validate checks the addressing mode and the warehouse required for the
// move direction. It never mutates state.
func (m *Move) Validate() error {
	if !m.Action.IsValid() {
		return shared.NewDomainError("INVALID_ACTION", "Move action must be IN or OUT")
	}
	if err := m.Addressing.Validate(); err != nil {
		return err
	}

	switch m.Action {
	case MoveActionIn:
		if m.ToWarehouseID == nil || *m.ToWarehouseID == uuid.Nil {
			return shared.NewDomainError("MISSING_WAREHOUSE", "IN moves require a destination warehouse")
		}
	case MoveActionOut:
		if m.FromWarehouseID == nil || *m.FromWarehouseID == uuid.Nil {
			return shared.NewDomainError("MISSING_WAREHOUSE", "OUT moves require a source warehouse")
		}
	}
	return nil
}

// Warehouse returns the warehouse the move acts on: the destination for IN,
// the source for OUT. Validate must have passed.
func (m *Move) Warehouse() uuid.UUID {
	if m.Action == MoveActionIn {
		return *m.ToWarehouseID
	}
	return *m.FromWarehouseID
}

// Delta returns the signed inventory delta of the move: +quantity for IN,
// -quantity for OUT.
func (m *Move) Delta() decimal.Decimal {
	if m.Action == MoveActionIn {
		return m.Quantity
	}
	return m.Quantity.Neg()
}

// MoveFilter narrows move history queries
type MoveFilter struct {
	Action      MoveAction
	WarehouseID *uuid.UUID
	ProductID   *uuid.UUID
	BatchID     string
	From        *time.Time
	To          *time.Time
}
