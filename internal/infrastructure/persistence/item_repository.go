package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Item, error) {
	var item stock.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate loads an item under an exclusive row lock
func (r *GormItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.Item, error) {
	var item stock.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByBarcode finds an item by its barcode text
func (r *GormItemRepository) FindByBarcode(ctx context.Context, barcode string) (*stock.Item, error) {
	var item stock.Item
	if err := r.db.WithContext(ctx).First(&item, "barcode_text = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.Item, error) {
	var items []stock.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&stock.Item{}), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyScopeFilters(r.db.WithContext(ctx).Model(&stock.Item{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSeq returns max(seq)+1 for the (product, import date) scope.
//
// The scope is serialized with a transaction-level advisory lock keyed on the
// pair, because FOR UPDATE cannot lock rows that do not exist yet: two
// first-of-the-day registrations would otherwise both read max(seq)=0. The
// advisory lock is released automatically at commit or rollback.
func (r *GormItemRepository) NextSeq(ctx context.Context, productID uuid.UUID, importDate time.Time) (int, error) {
	day := importDate.UTC().Format("2006-01-02")
	key := fmt.Sprintf("items_seq:%s:%s", productID, day)

	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
		return 0, err
	}

	var maxSeq int
	if err := r.db.WithContext(ctx).
		Model(&stock.Item{}).
		Where("product_id = ? AND import_date = ?", productID, day).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error; err != nil {
		return 0, err
	}

	return maxSeq + 1, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *stock.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// applyFilter applies filter options to the query
func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyScopeFilters(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormItemRepository) applyScopeFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if importDate, ok := filter.Filters["import_date"].(time.Time); ok {
		query = query.Where("import_date = ?", importDate.UTC().Format("2006-01-02"))
	}
	return query
}

// Ensure GormItemRepository implements ItemRepository
var _ stock.ItemRepository = (*GormItemRepository)(nil)
