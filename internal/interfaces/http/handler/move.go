package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/domain/stock"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// MoveHandler handles stock movement API endpoints
type MoveHandler struct {
	BaseHandler
	stockService *appstock.StockService
}

// NewMoveHandler creates a new MoveHandler
func NewMoveHandler(stockService *appstock.StockService) *MoveHandler {
	return &MoveHandler{stockService: stockService}
}

// CreateMoveRequest represents a request to apply a stock movement.
// Exactly one of item_id or (product_id, quantity) must be set.
type CreateMoveRequest struct {
	Action          string  `json:"action" binding:"required,oneof=IN OUT"`
	ItemID          string  `json:"item_id" binding:"omitempty,uuid"`
	ProductID       string  `json:"product_id" binding:"omitempty,uuid"`
	Quantity        float64 `json:"quantity" binding:"omitempty,gt=0"`
	FromWarehouseID string  `json:"from_warehouse_id" binding:"omitempty,uuid"`
	ToWarehouseID   string  `json:"to_warehouse_id" binding:"omitempty,uuid"`
	TypeAction      string  `json:"type_action" binding:"max=50"`
	Note            string  `json:"note" binding:"max=500"`
	BatchID         string  `json:"batch_id" binding:"max=100"`
	Tag             int64   `json:"tag"`
}

func parseOptionalUUID(s, label string) (*uuid.UUID, string) {
	if s == "" {
		return nil, ""
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, "Invalid " + label
	}
	return &id, ""
}

// Create applies a single stock movement atomically
func (h *MoveHandler) Create(c *gin.Context) {
	var req CreateMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	serviceReq := appstock.CreateMoveRequest{
		Action:     stock.MoveAction(req.Action),
		Quantity:   toDecimal(req.Quantity),
		TypeAction: req.TypeAction,
		Note:       req.Note,
		BatchID:    req.BatchID,
		Tag:        req.Tag,
		CreatedBy:  getOperatorID(c),
	}

	for _, field := range []struct {
		value  string
		label  string
		target **uuid.UUID
	}{
		{req.ItemID, "item ID", &serviceReq.ItemID},
		{req.ProductID, "product ID", &serviceReq.ProductID},
		{req.FromWarehouseID, "source warehouse ID", &serviceReq.FromWarehouseID},
		{req.ToWarehouseID, "target warehouse ID", &serviceReq.ToWarehouseID},
	} {
		id, msg := parseOptionalUUID(field.value, field.label)
		if msg != "" {
			h.BadRequest(c, msg)
			return
		}
		*field.target = id
	}

	move, err := h.stockService.CreateAndApplyMove(c.Request.Context(), serviceReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, move)
}

// GetByID retrieves a move from the journal
func (h *MoveHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid move ID")
		return
	}

	move, err := h.stockService.GetMove(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, move)
}

// List retrieves journal entries matching the given filters
func (h *MoveHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var moveFilter stock.MoveFilter
	if action := c.Query("action"); action != "" {
		moveFilter.Action = stock.MoveAction(action)
		if !moveFilter.Action.IsValid() {
			h.BadRequest(c, "Invalid action")
			return
		}
	}
	warehouseID, msg := parseOptionalUUID(c.Query("warehouse_id"), "warehouse ID")
	if msg != "" {
		h.BadRequest(c, msg)
		return
	}
	moveFilter.WarehouseID = warehouseID
	productID, msg := parseOptionalUUID(c.Query("product_id"), "product ID")
	if msg != "" {
		h.BadRequest(c, msg)
		return
	}
	moveFilter.ProductID = productID
	moveFilter.BatchID = c.Query("batch_id")
	if from := c.Query("from"); from != "" {
		t, err := parseDateTime(from)
		if err != nil {
			h.BadRequest(c, "Invalid from date")
			return
		}
		moveFilter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDateTime(to)
		if err != nil {
			h.BadRequest(c, "Invalid to date")
			return
		}
		moveFilter.To = &t
	}

	moves, err := h.stockService.ListMoves(c.Request.Context(), moveFilter, buildFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, moves)
}

// ListByBatch retrieves all moves applied under one batch
func (h *MoveHandler) ListByBatch(c *gin.Context) {
	moves, err := h.stockService.ListMovesByBatch(c.Request.Context(), c.Param("batch_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, moves)
}
