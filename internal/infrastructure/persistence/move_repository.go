package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormMoveRepository implements MoveRepository using GORM. The journal is
// append-only, so the repository exposes Create and reads but no update or
// delete.
type GormMoveRepository struct {
	db *gorm.DB
}

// NewGormMoveRepository creates a new GormMoveRepository
func NewGormMoveRepository(db *gorm.DB) *GormMoveRepository {
	return &GormMoveRepository{db: db}
}

// FindByID finds a move by its ID
func (r *GormMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Move, error) {
	var move stock.Move
	if err := r.db.WithContext(ctx).First(&move, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &move, nil
}

// FindByBatchID finds all moves sharing a batch ID
func (r *GormMoveRepository) FindByBatchID(ctx context.Context, batchID string) ([]stock.Move, error) {
	var moves []stock.Move
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

// List retrieves move history matching the filter
func (r *GormMoveRepository) List(ctx context.Context, filter stock.MoveFilter, page shared.Filter) ([]stock.Move, error) {
	var moves []stock.Move
	query := r.applyMoveFilter(r.db.WithContext(ctx).Model(&stock.Move{}), filter)

	if page.Page > 0 && page.PageSize > 0 {
		offset := (page.Page - 1) * page.PageSize
		query = query.Offset(offset).Limit(page.PageSize)
	}
	orderBy := ValidateSortField(page.OrderBy, MoveSortFields, "created_at")
	orderDir := ValidateSortOrder(page.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

// CountByBatchID counts moves sharing a batch ID
func (r *GormMoveRepository) CountByBatchID(ctx context.Context, batchID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stock.Move{}).
		Where("batch_id = ?", batchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create appends a move to the journal
func (r *GormMoveRepository) Create(ctx context.Context, move *stock.Move) error {
	return r.db.WithContext(ctx).Create(move).Error
}

func (r *GormMoveRepository) applyMoveFilter(query *gorm.DB, filter stock.MoveFilter) *gorm.DB {
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.WarehouseID != nil {
		query = query.Where("from_warehouse_id = ? OR to_warehouse_id = ?", *filter.WarehouseID, *filter.WarehouseID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.BatchID != "" {
		query = query.Where("batch_id = ?", filter.BatchID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	return query
}

// Ensure GormMoveRepository implements MoveRepository
var _ stock.MoveRepository = (*GormMoveRepository)(nil)
