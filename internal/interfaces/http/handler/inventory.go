package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory ledger API endpoints. The ledger is
// read-only over HTTP; balances change only through moves and orders.
type InventoryHandler struct {
	BaseHandler
	stockService *appstock.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *appstock.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// GetBalance retrieves the balance for one (warehouse, product) pair.
// Pairs never touched by a move report a zero quantity.
func (h *InventoryHandler) GetBalance(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	balance, err := h.stockService.GetInventory(c.Request.Context(), warehouseID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// List retrieves balance rows with pagination
func (h *InventoryHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := buildFilter(req)
	if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
		id, err := uuid.Parse(warehouseID)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID")
			return
		}
		filter.Filters["warehouse_id"] = id
	}
	if productID := c.Query("product_id"); productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		filter.Filters["product_id"] = id
	}
	if c.Query("has_stock") == "true" {
		filter.Filters["has_stock"] = true
	}

	page, err := h.stockService.ListInventory(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
