package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

// StockOrderService handles stock order drafting and confirmation.
type StockOrderService struct {
	scope          TransactionScope
	orderRepo      stock.StockOrderRepository
	eventPublisher shared.EventPublisher
}

// NewStockOrderService creates a new StockOrderService
func NewStockOrderService(scope TransactionScope, orderRepo stock.StockOrderRepository) *StockOrderService {
	return &StockOrderService{
		scope:     scope,
		orderRepo: orderRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *StockOrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// Create drafts a new stock order with its lines. The draft has no effect on
// inventory until it is confirmed.
func (s *StockOrderService) Create(ctx context.Context, req CreateStockOrderRequest) (*StockOrderResponse, error) {
	order, err := stock.NewStockOrder(req.OrderType, req.Source, req.FromWarehouseID, req.ToWarehouseID, req.Note, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		if line.ItemID != nil && line.ProductID != nil {
			err = shared.NewDomainError("CONFLICTING_ADDRESSING", "Item and product/quantity addressing are mutually exclusive")
		} else if line.ItemID != nil {
			err = order.AddItemLine(*line.ItemID)
		} else if line.ProductID != nil {
			err = order.AddBulkLine(*line.ProductID, line.Quantity)
		} else {
			err = shared.NewDomainError("MISSING_ADDRESSING", "Either an item or a product with quantity is required")
		}
		if err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return toStockOrderResponse(order), nil
}

// Confirm applies a draft order: one move per line, all within a single
// transaction. A failing line rolls back every move of the confirmation and
// the order stays a draft.
//
// Confirm is idempotent. The order row is locked for the duration of the
// confirmation, so a concurrent confirm either waits and then observes the
// confirmed state, or performs the confirmation itself; an already confirmed
// order is returned unchanged with no new moves.
func (s *StockOrderService) Confirm(ctx context.Context, orderID uuid.UUID, batchIDOverride string) (*StockOrderResponse, error) {
	var (
		order  *stock.StockOrder
		events []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.IsConfirmed {
			return nil
		}

		batchID := order.BatchID(batchIDOverride)

		// Build every move before applying any, so a structurally broken
		// line fails the whole confirmation without touching the ledger.
		moves := make([]*stock.Move, 0, len(order.Lines))
		for _, line := range order.Lines {
			move, err := order.BuildMove(line, batchID)
			if err != nil {
				return err
			}
			moves = append(moves, move)
		}

		for _, move := range moves {
			_, moveEvents, err := applyMove(ctx, repos, move)
			if err != nil {
				return err
			}
			events = append(events, moveEvents...)
		}

		if err := order.MarkConfirmed(time.Now()); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		events = append(events, order.GetDomainEvents()...)
		order.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events...)
	return toStockOrderResponse(order), nil
}

// GetByID retrieves a stock order with its lines
func (s *StockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*StockOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStockOrderResponse(order), nil
}

// List retrieves stock orders with pagination
func (s *StockOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*StockOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*StockOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toStockOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
