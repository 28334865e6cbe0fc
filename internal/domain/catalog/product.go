package catalog

import (
	"strings"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// Product represents a product/SKU in the catalog.
// It is the aggregate root for product-related operations.
// Code4 is assigned exactly once at creation and never edited afterwards,
// even if the SKU is renamed later.
type Product struct {
	shared.BaseAggregateRoot
	SKU   string `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_sku"`
	Name  string `gorm:"type:varchar(200);not null"`
	Code4 string `gorm:"type:char(4);not null;uniqueIndex:idx_products_code4"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. The caller provides the code4 obtained
// from AssignCode4 against the currently taken codes; the database unique
// index on code4 is the final safety net against concurrent creations.
func NewProduct(sku, name, code4 string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !isCode4(code4) {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code must be exactly 4 digits")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Code4:             code4,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Rename updates the product name. The SKU and code4 are immutable business
// keys and have no setters.
func (p *Product) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func isCode4(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
