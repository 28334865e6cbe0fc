package catalog

import (
	"github.com/wms/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated = "catalog.product.created"
)

// ProductCreatedEvent is emitted when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Code4 string `json:"code4"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", product.ID),
		SKU:             product.SKU,
		Name:            product.Name,
		Code4:           product.Code4,
	}
}
