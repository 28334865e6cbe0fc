package stock

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// StockActivityHandler subscribes to stock domain events and writes a
// structured activity log. It is purely observational; failures here never
// affect the originating transaction because events are published after
// commit.
type StockActivityHandler struct {
	logger *zap.Logger
}

// NewStockActivityHandler creates a new StockActivityHandler
func NewStockActivityHandler(logger *zap.Logger) *StockActivityHandler {
	return &StockActivityHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *StockActivityHandler) EventTypes() []string {
	return []string{
		stock.EventTypeItemRegistered,
		stock.EventTypeInventoryAdjusted,
		stock.EventTypeMoveApplied,
		stock.EventTypeStockOrderConfirmed,
	}
}

// Handle logs one stock domain event
func (h *StockActivityHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *stock.ItemRegisteredEvent:
		h.logger.Info("item registered",
			zap.String("item_id", e.AggregateID().String()),
			zap.String("product_id", e.ProductID.String()),
			zap.Int("seq", e.Seq),
			zap.String("barcode", e.BarcodeText),
		)
	case *stock.InventoryAdjustedEvent:
		h.logger.Info("inventory adjusted",
			zap.String("warehouse_id", e.WarehouseID.String()),
			zap.String("product_id", e.ProductID.String()),
			zap.String("old_quantity", e.OldQuantity.String()),
			zap.String("new_quantity", e.NewQuantity.String()),
			zap.String("delta", e.Delta.String()),
		)
	case *stock.MoveAppliedEvent:
		h.logger.Info("move applied",
			zap.String("move_id", e.AggregateID().String()),
			zap.String("action", string(e.Action)),
			zap.String("warehouse_id", e.WarehouseID.String()),
			zap.String("product_id", e.ProductID.String()),
			zap.String("quantity", e.Quantity.String()),
			zap.Bool("itemized", e.Itemized),
			zap.String("batch_id", e.BatchID),
		)
	case *stock.StockOrderConfirmedEvent:
		h.logger.Info("stock order confirmed",
			zap.String("order_id", e.AggregateID().String()),
			zap.String("order_type", string(e.OrderType)),
			zap.String("source", string(e.Source)),
			zap.Int("line_count", e.LineCount),
			zap.String("batch_id", e.BatchID),
		)
	default:
		h.logger.Debug("unhandled stock event", zap.String("event_type", event.EventType()))
	}
	return nil
}
