package stock

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockOrder(t *testing.T) {
	warehouseID := uuid.New()

	t.Run("creates draft IN order", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeIn, OrderSourceManual, nil, &warehouseID, "note", "user-1")

		require.NoError(t, err)
		assert.False(t, order.IsConfirmed)
		assert.Nil(t, order.ConfirmedAt)
		assert.Empty(t, order.Lines)
	})

	t.Run("IN order requires destination warehouse", func(t *testing.T) {
		_, err := NewStockOrder(OrderTypeIn, OrderSourceManual, &warehouseID, nil, "", "")
		assert.Error(t, err)
	})

	t.Run("OUT order requires source warehouse", func(t *testing.T) {
		_, err := NewStockOrder(OrderTypeOut, OrderSourceAPI, nil, &warehouseID, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown type and source", func(t *testing.T) {
		_, err := NewStockOrder(OrderType("TRANSFER"), OrderSourceManual, nil, &warehouseID, "", "")
		assert.Error(t, err)

		_, err = NewStockOrder(OrderTypeIn, OrderSource("EMAIL"), nil, &warehouseID, "", "")
		assert.Error(t, err)
	})
}

func TestStockOrder_Lines(t *testing.T) {
	warehouseID := uuid.New()

	newOrder := func(t *testing.T) *StockOrder {
		order, err := NewStockOrder(OrderTypeIn, OrderSourceSheet, nil, &warehouseID, "", "user-1")
		require.NoError(t, err)
		return order
	}

	t.Run("adds itemized and bulk lines to a draft", func(t *testing.T) {
		order := newOrder(t)

		require.NoError(t, order.AddItemLine(uuid.New()))
		require.NoError(t, order.AddBulkLine(uuid.New(), decimal.NewFromInt(10)))

		require.Len(t, order.Lines, 2)
		assert.True(t, order.Lines[0].IsItemized())
		assert.False(t, order.Lines[1].IsItemized())
		assert.Equal(t, order.ID, order.Lines[0].OrderID)
	})

	t.Run("rejects bulk line without positive quantity", func(t *testing.T) {
		order := newOrder(t)

		assert.Error(t, order.AddBulkLine(uuid.New(), decimal.Zero))
		assert.Empty(t, order.Lines)
	})

	t.Run("rejects line edits after confirmation", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.AddItemLine(uuid.New()))
		require.NoError(t, order.MarkConfirmed(time.Now()))

		err := order.AddItemLine(uuid.New())

		require.Error(t, err)
		assert.Equal(t, "ORDER_ALREADY_CONFIRMED", domainCode(t, err))
	})
}

func TestStockOrder_BatchID(t *testing.T) {
	warehouseID := uuid.New()
	order, err := NewStockOrder(OrderTypeIn, OrderSourceManual, nil, &warehouseID, "", "")
	require.NoError(t, err)

	t.Run("defaults to ORDER-<id>", func(t *testing.T) {
		assert.Equal(t, fmt.Sprintf("ORDER-%s", order.ID), order.BatchID(""))
	})

	t.Run("override wins", func(t *testing.T) {
		assert.Equal(t, "IMPORT-7", order.BatchID("IMPORT-7"))
	})
}

func TestStockOrder_BuildMove(t *testing.T) {
	fromID := uuid.New()
	toID := uuid.New()

	t.Run("IN order derives destination-only move", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeIn, OrderSourceSheet, &fromID, &toID, "receiving", "user-2")
		require.NoError(t, err)
		require.NoError(t, order.AddBulkLine(uuid.New(), decimal.NewFromInt(3)))

		move, err := order.BuildMove(order.Lines[0], "BATCH-1")

		require.NoError(t, err)
		assert.Equal(t, MoveActionIn, move.Action)
		assert.Nil(t, move.FromWarehouseID)
		require.NotNil(t, move.ToWarehouseID)
		assert.Equal(t, toID, *move.ToWarehouseID)
		assert.Equal(t, "SHEET", move.TypeAction)
		assert.Equal(t, "receiving", move.Note)
		assert.Equal(t, "user-2", move.CreatedBy)
		assert.Equal(t, "BATCH-1", move.BatchID)
	})

	t.Run("OUT order derives source-only move", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeOut, OrderSourceAPI, &fromID, &toID, "", "")
		require.NoError(t, err)
		require.NoError(t, order.AddItemLine(uuid.New()))

		move, err := order.BuildMove(order.Lines[0], "BATCH-2")

		require.NoError(t, err)
		assert.Equal(t, MoveActionOut, move.Action)
		require.NotNil(t, move.FromWarehouseID)
		assert.Equal(t, fromID, *move.FromWarehouseID)
		assert.Nil(t, move.ToWarehouseID)
		assert.True(t, move.IsItemized())
	})

	t.Run("structurally broken line fails before apply", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeIn, OrderSourceManual, nil, &toID, "", "")
		require.NoError(t, err)

		// A line persisted with neither mode set (e.g. hand-edited data)
		// must be caught during move construction.
		broken := StockOrderLine{OrderID: order.ID}

		_, err = order.BuildMove(broken, "BATCH-3")
		require.Error(t, err)
		assert.Equal(t, "MISSING_ADDRESSING", domainCode(t, err))
	})
}

func TestStockOrder_MarkConfirmed(t *testing.T) {
	warehouseID := uuid.New()

	t.Run("confirms a draft with lines", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeIn, OrderSourceManual, nil, &warehouseID, "", "")
		require.NoError(t, err)
		require.NoError(t, order.AddItemLine(uuid.New()))

		now := time.Now()
		require.NoError(t, order.MarkConfirmed(now))

		assert.True(t, order.IsConfirmed)
		require.NotNil(t, order.ConfirmedAt)
		assert.Equal(t, now, *order.ConfirmedAt)
	})

	t.Run("confirmation is terminal", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeIn, OrderSourceManual, nil, &warehouseID, "", "")
		require.NoError(t, err)
		require.NoError(t, order.AddItemLine(uuid.New()))
		require.NoError(t, order.MarkConfirmed(time.Now()))

		err = order.MarkConfirmed(time.Now())

		require.Error(t, err)
		assert.Equal(t, "ORDER_ALREADY_CONFIRMED", domainCode(t, err))
	})

	t.Run("refuses to confirm an empty order", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeIn, OrderSourceManual, nil, &warehouseID, "", "")
		require.NoError(t, err)

		assert.Error(t, order.MarkConfirmed(time.Now()))
	})

	t.Run("emits confirmed event", func(t *testing.T) {
		order, err := NewStockOrder(OrderTypeOut, OrderSourceAPI, &warehouseID, nil, "", "")
		require.NoError(t, err)
		require.NoError(t, order.AddBulkLine(uuid.New(), decimal.NewFromInt(2)))
		require.NoError(t, order.MarkConfirmed(time.Now()))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockOrderConfirmed, events[0].EventType())
	})
}
