package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// ItemHandler handles item registration and lookup API endpoints
type ItemHandler struct {
	BaseHandler
	stockService *appstock.StockService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(stockService *appstock.StockService) *ItemHandler {
	return &ItemHandler{stockService: stockService}
}

// CreateItemRequest represents a request to register a physical unit.
// ImportDate accepts "2006-01-02" or RFC3339; the time part is ignored.
type CreateItemRequest struct {
	ProductID   string `json:"product_id" binding:"required,uuid"`
	ImportDate  string `json:"import_date" binding:"required"`
	WarehouseID string `json:"warehouse_id" binding:"omitempty,uuid"`
}

// Create registers an item and assigns its sequential barcode
func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	importDate, err := parseDateTime(req.ImportDate)
	if err != nil {
		h.BadRequest(c, "Invalid import date")
		return
	}

	serviceReq := appstock.CreateItemRequest{
		ProductID:  productID,
		ImportDate: importDate,
	}
	if req.WarehouseID != "" {
		warehouseID, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID")
			return
		}
		serviceReq.WarehouseID = &warehouseID
	}

	item, err := h.stockService.CreateItem(c.Request.Context(), serviceReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetByID retrieves an item by ID
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.stockService.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// GetByBarcode resolves a scanned barcode to its item
func (h *ItemHandler) GetByBarcode(c *gin.Context) {
	item, err := h.stockService.GetItemByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// List retrieves items with pagination
func (h *ItemHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := buildFilter(req)
	if productID := c.Query("product_id"); productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		filter.Filters["product_id"] = id
	}
	if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
		id, err := uuid.Parse(warehouseID)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID")
			return
		}
		filter.Filters["warehouse_id"] = id
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if importDate := c.Query("import_date"); importDate != "" {
		date, err := parseDateTime(importDate)
		if err != nil {
			h.BadRequest(c, "Invalid import date")
			return
		}
		filter.Filters["import_date"] = date
	}

	page, err := h.stockService.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
