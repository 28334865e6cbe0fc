package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	appstock "github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode4(ctx context.Context, code4 string) (*catalog.Product, error) {
	args := m.Called(ctx, code4)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) TakenCodes(ctx context.Context) (map[string]bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockWarehouseRepository implements partner.WarehouseRepository for testing
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByCode(ctx context.Context, code string) (*partner.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *partner.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

// MockItemRepository implements stock.ItemRepository for testing
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Item), args.Error(1)
}

func (m *MockItemRepository) FindByBarcode(ctx context.Context, barcode string) (*stock.Item, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stock.Item), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) NextSeq(ctx context.Context, productID uuid.UUID, importDate time.Time) (int, error) {
	args := m.Called(ctx, productID, importDate)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *stock.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockInventoryItemRepository implements stock.InventoryItemRepository for testing
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*stock.InventoryItem, error) {
	args := m.Called(ctx, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.InventoryItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stock.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryItemRepository) GetOrCreateLocked(ctx context.Context, warehouseID, productID uuid.UUID) (*stock.InventoryItem, error) {
	args := m.Called(ctx, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *stock.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockMoveRepository implements stock.MoveRepository for testing
type MockMoveRepository struct {
	mock.Mock
}

func (m *MockMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Move, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Move), args.Error(1)
}

func (m *MockMoveRepository) FindByBatchID(ctx context.Context, batchID string) ([]stock.Move, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]stock.Move), args.Error(1)
}

func (m *MockMoveRepository) List(ctx context.Context, filter stock.MoveFilter, page shared.Filter) ([]stock.Move, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]stock.Move), args.Error(1)
}

func (m *MockMoveRepository) CountByBatchID(ctx context.Context, batchID string) (int64, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMoveRepository) Create(ctx context.Context, move *stock.Move) error {
	args := m.Called(ctx, move)
	return args.Error(0)
}

// MockStockOrderRepository implements stock.StockOrderRepository for testing
type MockStockOrderRepository struct {
	mock.Mock
}

func (m *MockStockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockOrder), args.Error(1)
}

func (m *MockStockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.StockOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockOrder), args.Error(1)
}

func (m *MockStockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.StockOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stock.StockOrder), args.Error(1)
}

func (m *MockStockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockOrderRepository) Save(ctx context.Context, order *stock.StockOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// stubScope runs transactional work directly against the mock repositories,
// without a real database transaction.
type stubScope struct {
	products  *MockProductRepository
	items     *MockItemRepository
	inventory *MockInventoryItemRepository
	moves     *MockMoveRepository
	orders    *MockStockOrderRepository
}

func newStubScope() *stubScope {
	return &stubScope{
		products:  new(MockProductRepository),
		items:     new(MockItemRepository),
		inventory: new(MockInventoryItemRepository),
		moves:     new(MockMoveRepository),
		orders:    new(MockStockOrderRepository),
	}
}

func (s *stubScope) Execute(ctx context.Context, fn func(appstock.TransactionalRepositories) error) error {
	return fn(s)
}

func (s *stubScope) Products() catalog.ProductRepository      { return s.products }
func (s *stubScope) Items() stock.ItemRepository              { return s.items }
func (s *stubScope) Inventory() stock.InventoryItemRepository { return s.inventory }
func (s *stubScope) Moves() stock.MoveRepository              { return s.moves }
func (s *stubScope) Orders() stock.StockOrderRepository       { return s.orders }

// Test setup helpers

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func createTestProduct() *catalog.Product {
	product, _ := catalog.NewProduct("ABC123", "Test Product", "0304")
	product.ClearDomainEvents()
	return product
}

func createTestWarehouse() *partner.Warehouse {
	warehouse, _ := partner.NewWarehouse("WH-MAIN", "Main Warehouse")
	warehouse.ClearDomainEvents()
	return warehouse
}

func createTestItem(productID uuid.UUID) *stock.Item {
	item, _ := stock.NewItem(productID, "0304", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 1)
	item.ClearDomainEvents()
	return item
}
