package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// ItemStatus represents the lifecycle state of a physical item
type ItemStatus string

const (
	// ItemStatusNone is the initial state: created but never moved.
	ItemStatusNone ItemStatus = "none"
	// ItemStatusInStock means the item sits in a warehouse.
	ItemStatusInStock ItemStatus = "in_stock"
	// ItemStatusShipping means the item has departed its warehouse and is
	// not currently located anywhere.
	ItemStatusShipping ItemStatus = "shipping"
)

// IsValid returns true if the status is a valid ItemStatus
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusNone, ItemStatusInStock, ItemStatusShipping:
		return true
	}
	return false
}

// Item represents one physical unit of a product. Each item carries a
// globally unique barcode composed from the product code, the import date
// and a per-(product, date) sequence number. The (product, date, seq) triple
// is unique; an item is never re-sequenced after creation.
type Item struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_items_product_date_seq,priority:1"`
	ImportDate  time.Time  `gorm:"type:date;not null;uniqueIndex:idx_items_product_date_seq,priority:2"`
	Seq         int        `gorm:"not null;uniqueIndex:idx_items_product_date_seq,priority:3"`
	BarcodeText string     `gorm:"type:char(15);not null;uniqueIndex:idx_items_barcode"`
	WarehouseID *uuid.UUID `gorm:"type:uuid;index"`
	Status      ItemStatus `gorm:"type:varchar(20);not null;default:'none'"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item with an already assigned sequence number.
// The barcode is composed deterministically from the product code4, the
// import date and the sequence. Items start in status "none" with no
// location; they enter a warehouse only through an applied IN move.
func NewItem(productID uuid.UUID, code4 string, importDate time.Time, seq int) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if len(code4) != 4 {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code must be exactly 4 digits")
	}
	if seq <= 0 {
		return nil, shared.NewDomainError("INVALID_SEQ", "Sequence number must be positive")
	}
	if seq > MaxSeq {
		return nil, shared.NewDomainError("SEQ_OVERFLOW", "Sequence number exceeds the 5-digit barcode segment")
	}

	importDate = TruncateToDate(importDate)

	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ImportDate:        importDate,
		Seq:               seq,
		BarcodeText:       ComposeBarcode(code4, importDate, seq),
		Status:            ItemStatusNone,
	}

	item.AddDomainEvent(NewItemRegisteredEvent(item))

	return item, nil
}

// SetInitialWarehouse records where a freshly registered item physically
// sits. Allowed only before any move has touched the item; the status stays
// "none" until an IN move is applied.
func (i *Item) SetInitialWarehouse(warehouseID uuid.UUID) error {
	if i.Status != ItemStatusNone {
		return shared.ErrInvalidState
	}
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	i.WarehouseID = &warehouseID
	i.UpdatedAt = time.Now()
	return nil
}

// Receive places the item into a warehouse as the effect of an applied
// itemized IN move.
func (i *Item) Receive(warehouseID uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	i.WarehouseID = &warehouseID
	i.Status = ItemStatusInStock
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Ship marks the item as departed from its warehouse as the effect of an
// applied itemized OUT move. The item is not placed at a destination.
func (i *Item) Ship() {
	i.WarehouseID = nil
	i.Status = ItemStatusShipping
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// TruncateToDate normalizes a timestamp to its UTC calendar day. Sequencing
// and storage must agree on the day an item belongs to, so every consumer of
// an import date goes through this before comparing or persisting it; a
// timestamp with a zone offset would otherwise sequence under one day and
// persist under another.
func TruncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
