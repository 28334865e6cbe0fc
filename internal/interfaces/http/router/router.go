package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/interfaces/http/handler"
)

// Handlers collects the HTTP handlers the API mounts.
type Handlers struct {
	Product    *handler.ProductHandler
	Warehouse  *handler.WarehouseHandler
	Item       *handler.ItemHandler
	Inventory  *handler.InventoryHandler
	Move       *handler.MoveHandler
	StockOrder *handler.StockOrderHandler
	System     *handler.SystemHandler
}

// Mount registers the versioned API surface on the engine: the product
// catalog, the warehouse directory, the stock domain (items, ledger reads,
// the move journal, stock orders) and the system endpoints.
func Mount(engine *gin.Engine, h Handlers) {
	api := engine.Group("/api/v1")

	catalog := api.Group("/catalog")
	{
		catalog.POST("/products", h.Product.Create)
		catalog.GET("/products", h.Product.List)
		catalog.GET("/products/:id", h.Product.GetByID)
		catalog.GET("/products/sku/:sku", h.Product.GetBySKU)
		catalog.PUT("/products/:id", h.Product.Update)
	}

	partner := api.Group("/partner")
	{
		partner.POST("/warehouses", h.Warehouse.Create)
		partner.GET("/warehouses", h.Warehouse.List)
		partner.GET("/warehouses/:id", h.Warehouse.GetByID)
		partner.GET("/warehouses/code/:code", h.Warehouse.GetByCode)
		partner.DELETE("/warehouses/:id", h.Warehouse.Deactivate)
	}

	stock := api.Group("/stock")
	{
		stock.POST("/items", h.Item.Create)
		stock.GET("/items", h.Item.List)
		stock.GET("/items/:id", h.Item.GetByID)
		stock.GET("/items/barcode/:barcode", h.Item.GetByBarcode)

		stock.GET("/inventory", h.Inventory.List)
		stock.GET("/inventory/balance", h.Inventory.GetBalance)

		stock.POST("/moves", h.Move.Create)
		stock.GET("/moves", h.Move.List)
		stock.GET("/moves/:id", h.Move.GetByID)
		stock.GET("/moves/batch/:batch_id", h.Move.ListByBatch)

		stock.POST("/orders", h.StockOrder.Create)
		stock.GET("/orders", h.StockOrder.List)
		stock.GET("/orders/:id", h.StockOrder.GetByID)
		stock.POST("/orders/:id/confirm", h.StockOrder.Confirm)
	}

	system := api.Group("/system")
	{
		system.GET("/info", h.System.GetSystemInfo)
		system.GET("/ping", h.System.Ping)
	}
}
