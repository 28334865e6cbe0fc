package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/domain/stock"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// StockOrderHandler handles stock order API endpoints
type StockOrderHandler struct {
	BaseHandler
	orderService *appstock.StockOrderService
}

// NewStockOrderHandler creates a new StockOrderHandler
func NewStockOrderHandler(orderService *appstock.StockOrderService) *StockOrderHandler {
	return &StockOrderHandler{orderService: orderService}
}

// OrderLineRequest is one line of a stock order.
// Exactly one of item_id or (product_id, quantity) must be set.
type OrderLineRequest struct {
	ItemID    string  `json:"item_id" binding:"omitempty,uuid"`
	ProductID string  `json:"product_id" binding:"omitempty,uuid"`
	Quantity  float64 `json:"quantity" binding:"omitempty,gt=0"`
}

// CreateStockOrderRequest represents a request to create a draft stock order
type CreateStockOrderRequest struct {
	OrderType       string             `json:"order_type" binding:"required,oneof=IN OUT"`
	Source          string             `json:"source" binding:"omitempty,oneof=MANUAL SHEET API"`
	FromWarehouseID string             `json:"from_warehouse_id" binding:"omitempty,uuid"`
	ToWarehouseID   string             `json:"to_warehouse_id" binding:"omitempty,uuid"`
	Note            string             `json:"note" binding:"max=500"`
	Lines           []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ConfirmStockOrderRequest optionally overrides the batch ID used for the
// moves a confirmation produces
type ConfirmStockOrderRequest struct {
	BatchID string `json:"batch_id" binding:"max=100"`
}

// Create creates a draft stock order. Drafts have no ledger effect.
func (h *StockOrderHandler) Create(c *gin.Context) {
	var req CreateStockOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	source := stock.OrderSource(req.Source)
	if req.Source == "" {
		source = stock.OrderSourceManual
	}

	serviceReq := appstock.CreateStockOrderRequest{
		OrderType: stock.OrderType(req.OrderType),
		Source:    source,
		Note:      req.Note,
		CreatedBy: getOperatorID(c),
	}

	fromID, msg := parseOptionalUUID(req.FromWarehouseID, "source warehouse ID")
	if msg != "" {
		h.BadRequest(c, msg)
		return
	}
	serviceReq.FromWarehouseID = fromID
	toID, msg := parseOptionalUUID(req.ToWarehouseID, "target warehouse ID")
	if msg != "" {
		h.BadRequest(c, msg)
		return
	}
	serviceReq.ToWarehouseID = toID

	for _, line := range req.Lines {
		lineReq := appstock.OrderLineRequest{Quantity: toDecimal(line.Quantity)}
		itemID, msg := parseOptionalUUID(line.ItemID, "item ID")
		if msg != "" {
			h.BadRequest(c, msg)
			return
		}
		lineReq.ItemID = itemID
		productID, msg := parseOptionalUUID(line.ProductID, "product ID")
		if msg != "" {
			h.BadRequest(c, msg)
			return
		}
		lineReq.ProductID = productID
		serviceReq.Lines = append(serviceReq.Lines, lineReq)
	}

	order, err := h.orderService.Create(c.Request.Context(), serviceReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Confirm applies all lines of a draft order atomically. Confirming an
// already-confirmed order is a no-op and returns the order unchanged.
func (h *StockOrderHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req ConfirmStockOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	order, err := h.orderService.Confirm(c.Request.Context(), id, req.BatchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByID retrieves a stock order with its lines
func (h *StockOrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List retrieves stock orders with pagination
func (h *StockOrderHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := buildFilter(req)
	if orderType := c.Query("order_type"); orderType != "" {
		filter.Filters["order_type"] = orderType
	}
	if source := c.Query("source"); source != "" {
		filter.Filters["source"] = source
	}
	if confirmed := c.Query("is_confirmed"); confirmed != "" {
		filter.Filters["is_confirmed"] = confirmed == "true"
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
