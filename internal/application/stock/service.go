package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

// StockService handles item registration and movement application.
//
// Every write runs inside a transaction scope: the sequence assignment, the
// barcode uniqueness, the balance adjustment and the journal append commit or
// roll back together. Domain events are published only after the transaction
// has committed.
type StockService struct {
	scope          TransactionScope
	inventoryRepo  stock.InventoryItemRepository
	itemRepo       stock.ItemRepository
	moveRepo       stock.MoveRepository
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService. The standalone repositories
// serve reads; writes go through the transaction scope.
func NewStockService(
	scope TransactionScope,
	inventoryRepo stock.InventoryItemRepository,
	itemRepo stock.ItemRepository,
	moveRepo stock.MoveRepository,
) *StockService {
	return &StockService{
		scope:         scope,
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		moveRepo:      moveRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *StockService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}

// CreateItem registers one physical unit of a product. The sequence number is
// assigned under lock per (product, import date), so two concurrent
// registrations for the same pair never share a barcode.
func (s *StockService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	var (
		item   *stock.Item
		events []shared.DomainEvent
	)

	// One normalized day for both the sequence scope and the stored item;
	// a zone-offset timestamp must not sequence under a different day than
	// it persists under.
	importDate := stock.TruncateToDate(req.ImportDate)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		seq, err := repos.Items().NextSeq(ctx, product.ID, importDate)
		if err != nil {
			return err
		}

		item, err = stock.NewItem(product.ID, product.Code4, importDate, seq)
		if err != nil {
			return err
		}
		if req.WarehouseID != nil {
			if err := item.SetInitialWarehouse(*req.WarehouseID); err != nil {
				return err
			}
		}

		if err := repos.Items().Save(ctx, item); err != nil {
			return err
		}

		events = item.GetDomainEvents()
		item.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events...)
	return toItemResponse(item), nil
}

// CreateAndApplyMove validates, applies and records a single movement
// atomically. On any failure nothing is recorded and no state changes.
func (s *StockService) CreateAndApplyMove(ctx context.Context, req CreateMoveRequest) (*MoveResponse, error) {
	move, err := stock.NewMove(req.Action, req.addressing(), req.FromWarehouseID, req.ToWarehouseID, stock.MoveMeta{
		TypeAction: req.TypeAction,
		Note:       req.Note,
		CreatedBy:  req.CreatedBy,
		BatchID:    req.BatchID,
		Tag:        req.Tag,
	})
	if err != nil {
		return nil, err
	}

	var (
		productID uuid.UUID
		events    []shared.DomainEvent
	)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		productID, events, err = applyMove(ctx, repos, move)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events...)
	return toMoveResponse(move, productID), nil
}

// applyMove applies one validated move inside a transaction and appends it to
// the journal. It returns the resolved product ID and the domain events to
// publish after commit.
//
// Lock order is fixed: the inventory balance row first, the item row second.
// For itemized moves the item is read without a lock first, only to learn its
// product (the product of an item never changes); the locked re-read happens
// after the balance row is held.
func applyMove(ctx context.Context, repos TransactionalRepositories, move *stock.Move) (uuid.UUID, []shared.DomainEvent, error) {
	if err := move.Validate(); err != nil {
		return uuid.Nil, nil, err
	}

	var productID uuid.UUID
	if move.IsItemized() {
		item, err := repos.Items().FindByID(ctx, *move.ItemID)
		if err != nil {
			return uuid.Nil, nil, err
		}
		productID = item.ProductID
	} else {
		productID = *move.ProductID
	}

	balance, err := repos.Inventory().GetOrCreateLocked(ctx, move.Warehouse(), productID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if _, err := balance.Adjust(move.Delta()); err != nil {
		return uuid.Nil, nil, err
	}
	if err := repos.Inventory().Save(ctx, balance); err != nil {
		return uuid.Nil, nil, err
	}

	events := balance.GetDomainEvents()
	balance.ClearDomainEvents()

	if move.IsItemized() {
		item, err := repos.Items().FindByIDForUpdate(ctx, *move.ItemID)
		if err != nil {
			return uuid.Nil, nil, err
		}
		switch move.Action {
		case stock.MoveActionIn:
			if err := item.Receive(move.Warehouse()); err != nil {
				return uuid.Nil, nil, err
			}
		case stock.MoveActionOut:
			item.Ship()
		}
		if err := repos.Items().Save(ctx, item); err != nil {
			return uuid.Nil, nil, err
		}
	}

	if err := repos.Moves().Create(ctx, move); err != nil {
		return uuid.Nil, nil, err
	}

	events = append(events, stock.NewMoveAppliedEvent(move, productID))
	return productID, events, nil
}

// GetItem retrieves an item by ID
func (s *StockService) GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItemByBarcode retrieves an item by its barcode text
func (s *StockService) GetItemByBarcode(ctx context.Context, barcode string) (*ItemResponse, error) {
	if _, _, _, err := stock.ParseBarcode(barcode); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems retrieves items with pagination
func (s *StockService) ListItems(ctx context.Context, filter shared.Filter) (*shared.Paginated[*ItemResponse], error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toItemResponse(&items[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetInventory returns the balance for a warehouse-product pair. A pair that
// was never adjusted reads as quantity zero; no row is created.
func (s *StockService) GetInventory(ctx context.Context, warehouseID, productID uuid.UUID) (*InventoryResponse, error) {
	balance, err := s.inventoryRepo.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if errors.Is(err, shared.ErrNotFound) {
		empty, nerr := stock.NewInventoryItem(warehouseID, productID)
		if nerr != nil {
			return nil, nerr
		}
		return toInventoryResponse(empty), nil
	}
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(balance), nil
}

// ListInventory retrieves balance rows with pagination
func (s *StockService) ListInventory(ctx context.Context, filter shared.Filter) (*shared.Paginated[*InventoryResponse], error) {
	items, err := s.inventoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.inventoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*InventoryResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toInventoryResponse(&items[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetMove retrieves a single move from the journal
func (s *StockService) GetMove(ctx context.Context, id uuid.UUID) (*MoveResponse, error) {
	move, err := s.moveRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return journalMoveResponse(move), nil
}

// ListMoves retrieves move history with filtering and pagination
func (s *StockService) ListMoves(ctx context.Context, filter stock.MoveFilter, page shared.Filter) ([]*MoveResponse, error) {
	moves, err := s.moveRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	responses := make([]*MoveResponse, 0, len(moves))
	for i := range moves {
		responses = append(responses, journalMoveResponse(&moves[i]))
	}
	return responses, nil
}

// ListMovesByBatch retrieves all moves sharing a batch ID
func (s *StockService) ListMovesByBatch(ctx context.Context, batchID string) ([]*MoveResponse, error) {
	moves, err := s.moveRepo.FindByBatchID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	responses := make([]*MoveResponse, 0, len(moves))
	for i := range moves {
		responses = append(responses, journalMoveResponse(&moves[i]))
	}
	return responses, nil
}
