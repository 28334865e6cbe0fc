package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByWarehouseAndProduct finds the balance row for a warehouse-product pair
func (r *GormInventoryItemRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*stock.InventoryItem, error) {
	var item stock.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all balance rows matching the filter
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.InventoryItem, error) {
	var items []stock.InventoryItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&stock.InventoryItem{}), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts balance rows matching the filter
func (r *GormInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&stock.InventoryItem{})
	query = r.applyScopeFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetOrCreateLocked returns the balance row for the pair under an exclusive
// row lock, creating a zero row first when absent. The ON CONFLICT clause
// absorbs the race where two transactions create the same pair; both then
// queue on the row lock and see each other's committed adjustments.
func (r *GormInventoryItemRepository) GetOrCreateLocked(ctx context.Context, warehouseID, productID uuid.UUID) (*stock.InventoryItem, error) {
	item, err := r.findLocked(ctx, warehouseID, productID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := stock.NewInventoryItem(warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(fresh).Error; err != nil {
		return nil, err
	}

	return r.findLocked(ctx, warehouseID, productID)
}

func (r *GormInventoryItemRepository) findLocked(ctx context.Context, warehouseID, productID uuid.UUID) (*stock.InventoryItem, error) {
	var item stock.InventoryItem
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a balance row
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *stock.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// applyFilter applies filter options to the query
func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyScopeFilters(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InventorySortFields, "updated_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormInventoryItemRepository) applyScopeFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if hasStock, ok := filter.Filters["has_stock"].(bool); ok && hasStock {
		query = query.Where("quantity > 0")
	}
	return query
}

// Ensure GormInventoryItemRepository implements InventoryItemRepository
var _ stock.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
