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

// GormStockOrderRepository implements StockOrderRepository using GORM
type GormStockOrderRepository struct {
	db *gorm.DB
}

// NewGormStockOrderRepository creates a new GormStockOrderRepository
func NewGormStockOrderRepository(db *gorm.DB) *GormStockOrderRepository {
	return &GormStockOrderRepository{db: db}
}

// FindByID finds a stock order with its lines
func (r *GormStockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockOrder, error) {
	var order stock.StockOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate loads the order under an exclusive lock on the order row,
// serializing concurrent confirmations. Lines are loaded in a separate query
// so the lock clause applies to the order row only.
func (r *GormStockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.StockOrder, error) {
	var order stock.StockOrder
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("created_at ASC").
		Find(&order.Lines).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAll finds stock orders matching the filter
func (r *GormStockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.StockOrder, error) {
	var orders []stock.StockOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&stock.StockOrder{}).Preload("Lines"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts stock orders matching the filter
func (r *GormStockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyScopeFilters(r.db.WithContext(ctx).Model(&stock.StockOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock order together with its lines
func (r *GormStockOrderRepository) Save(ctx context.Context, order *stock.StockOrder) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// applyFilter applies filter options to the query
func (r *GormStockOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyScopeFilters(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockOrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormStockOrderRepository) applyScopeFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if orderType, ok := filter.Filters["order_type"]; ok {
		query = query.Where("order_type = ?", orderType)
	}
	if source, ok := filter.Filters["source"]; ok {
		query = query.Where("source = ?", source)
	}
	if confirmed, ok := filter.Filters["is_confirmed"]; ok {
		query = query.Where("is_confirmed = ?", confirmed)
	}
	return query
}

// Ensure GormStockOrderRepository implements StockOrderRepository
var _ stock.StockOrderRepository = (*GormStockOrderRepository)(nil)
