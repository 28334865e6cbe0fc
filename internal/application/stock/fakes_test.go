package stock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

// MockEventPublisher collects published domain events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// The in-memory repositories below use value semantics: Save stores a copy
// and Find returns a copy, so stored state only changes through Save. That
// makes snapshot and restore in memTxScope a matter of copying the maps.

type memProductRepo struct {
	products map[uuid.UUID]catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *memProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByCode4(_ context.Context, code4 string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.Code4 == code4 {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, p)
	}
	return result, nil
}

func (r *memProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *memProductRepo) TakenCodes(_ context.Context) (map[string]bool, error) {
	taken := make(map[string]bool, len(r.products))
	for _, p := range r.products {
		taken[p.Code4] = true
	}
	return taken, nil
}

func (r *memProductRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = *product
	return nil
}

type memItemRepo struct {
	items map[uuid.UUID]stock.Item
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[uuid.UUID]stock.Item)}
}

func (r *memItemRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &item, nil
}

func (r *memItemRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *memItemRepo) FindByBarcode(_ context.Context, barcode string) (*stock.Item, error) {
	for _, item := range r.items {
		if item.BarcodeText == barcode {
			return &item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memItemRepo) FindAll(_ context.Context, _ shared.Filter) ([]stock.Item, error) {
	result := make([]stock.Item, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}
	return result, nil
}

func (r *memItemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memItemRepo) NextSeq(_ context.Context, productID uuid.UUID, importDate time.Time) (int, error) {
	day := stock.TruncateToDate(importDate)
	max := 0
	for _, item := range r.items {
		if item.ProductID == productID && item.ImportDate.Equal(day) && item.Seq > max {
			max = item.Seq
		}
	}
	return max + 1, nil
}

func (r *memItemRepo) Save(_ context.Context, item *stock.Item) error {
	r.items[item.ID] = *item
	return nil
}

type memInventoryRepo struct {
	rows map[string]stock.InventoryItem
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{rows: make(map[string]stock.InventoryItem)}
}

func inventoryKey(warehouseID, productID uuid.UUID) string {
	return warehouseID.String() + "/" + productID.String()
}

func (r *memInventoryRepo) FindByWarehouseAndProduct(_ context.Context, warehouseID, productID uuid.UUID) (*stock.InventoryItem, error) {
	row, ok := r.rows[inventoryKey(warehouseID, productID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &row, nil
}

func (r *memInventoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]stock.InventoryItem, error) {
	result := make([]stock.InventoryItem, 0, len(r.rows))
	for _, row := range r.rows {
		result = append(result, row)
	}
	return result, nil
}

func (r *memInventoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *memInventoryRepo) GetOrCreateLocked(_ context.Context, warehouseID, productID uuid.UUID) (*stock.InventoryItem, error) {
	key := inventoryKey(warehouseID, productID)
	if row, ok := r.rows[key]; ok {
		return &row, nil
	}
	row, err := stock.NewInventoryItem(warehouseID, productID)
	if err != nil {
		return nil, err
	}
	r.rows[key] = *row
	fresh := r.rows[key]
	return &fresh, nil
}

func (r *memInventoryRepo) Save(_ context.Context, item *stock.InventoryItem) error {
	r.rows[inventoryKey(item.WarehouseID, item.ProductID)] = *item
	return nil
}

type memMoveRepo struct {
	moves []stock.Move
}

func newMemMoveRepo() *memMoveRepo {
	return &memMoveRepo{moves: make([]stock.Move, 0)}
}

func (r *memMoveRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.Move, error) {
	for _, move := range r.moves {
		if move.ID == id {
			return &move, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memMoveRepo) FindByBatchID(_ context.Context, batchID string) ([]stock.Move, error) {
	result := make([]stock.Move, 0)
	for _, move := range r.moves {
		if move.BatchID == batchID {
			result = append(result, move)
		}
	}
	return result, nil
}

func (r *memMoveRepo) List(_ context.Context, filter stock.MoveFilter, _ shared.Filter) ([]stock.Move, error) {
	result := make([]stock.Move, 0)
	for _, move := range r.moves {
		if filter.Action != "" && move.Action != filter.Action {
			continue
		}
		if filter.BatchID != "" && move.BatchID != filter.BatchID {
			continue
		}
		if filter.ProductID != nil && (move.ProductID == nil || *move.ProductID != *filter.ProductID) {
			continue
		}
		if filter.WarehouseID != nil && move.Warehouse() != *filter.WarehouseID {
			continue
		}
		result = append(result, move)
	}
	return result, nil
}

func (r *memMoveRepo) CountByBatchID(_ context.Context, batchID string) (int64, error) {
	var count int64
	for _, move := range r.moves {
		if move.BatchID == batchID {
			count++
		}
	}
	return count, nil
}

func (r *memMoveRepo) Create(_ context.Context, move *stock.Move) error {
	r.moves = append(r.moves, *move)
	return nil
}

type memOrderRepo struct {
	orders map[uuid.UUID]stock.StockOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]stock.StockOrder)}
}

func copyOrder(order stock.StockOrder) stock.StockOrder {
	lines := make([]stock.StockOrderLine, len(order.Lines))
	copy(lines, order.Lines)
	order.Lines = lines
	return order
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.StockOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	order = copyOrder(order)
	return &order, nil
}

func (r *memOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.StockOrder, error) {
	return r.FindByID(ctx, id)
}

func (r *memOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]stock.StockOrder, error) {
	result := make([]stock.StockOrder, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, copyOrder(order))
	}
	return result, nil
}

func (r *memOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) Save(_ context.Context, order *stock.StockOrder) error {
	r.orders[order.ID] = copyOrder(*order)
	return nil
}

// memTxScope runs the function over the in-memory repositories and restores
// their previous contents when it fails, mimicking a rollback. Execute holds
// a mutex for the duration of the function, standing in for the row and
// advisory locks that serialize the real transactions.
type memTxScope struct {
	mu        sync.Mutex
	products  *memProductRepo
	items     *memItemRepo
	inventory *memInventoryRepo
	moves     *memMoveRepo
	orders    *memOrderRepo
}

func (s *memTxScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	productSnap := make(map[uuid.UUID]catalog.Product, len(s.products.products))
	for k, v := range s.products.products {
		productSnap[k] = v
	}
	itemSnap := make(map[uuid.UUID]stock.Item, len(s.items.items))
	for k, v := range s.items.items {
		itemSnap[k] = v
	}
	inventorySnap := make(map[string]stock.InventoryItem, len(s.inventory.rows))
	for k, v := range s.inventory.rows {
		inventorySnap[k] = v
	}
	moveSnap := make([]stock.Move, len(s.moves.moves))
	copy(moveSnap, s.moves.moves)
	orderSnap := make(map[uuid.UUID]stock.StockOrder, len(s.orders.orders))
	for k, v := range s.orders.orders {
		orderSnap[k] = copyOrder(v)
	}

	if err := fn(s); err != nil {
		s.products.products = productSnap
		s.items.items = itemSnap
		s.inventory.rows = inventorySnap
		s.moves.moves = moveSnap
		s.orders.orders = orderSnap
		return err
	}
	return nil
}

func (s *memTxScope) Products() catalog.ProductRepository      { return s.products }
func (s *memTxScope) Items() stock.ItemRepository              { return s.items }
func (s *memTxScope) Inventory() stock.InventoryItemRepository { return s.inventory }
func (s *memTxScope) Moves() stock.MoveRepository              { return s.moves }
func (s *memTxScope) Orders() stock.StockOrderRepository       { return s.orders }

var _ TransactionScope = (*memTxScope)(nil)
var _ TransactionalRepositories = (*memTxScope)(nil)

// fixture wires the in-memory world together for service tests
type fixture struct {
	scope        *memTxScope
	service      *StockService
	orderService *StockOrderService
	publisher    *MockEventPublisher
}

func newFixture() *fixture {
	scope := &memTxScope{
		products:  newMemProductRepo(),
		items:     newMemItemRepo(),
		inventory: newMemInventoryRepo(),
		moves:     newMemMoveRepo(),
		orders:    newMemOrderRepo(),
	}
	publisher := NewMockEventPublisher()

	service := NewStockService(scope, scope.inventory, scope.items, scope.moves)
	service.SetEventPublisher(publisher)

	orderService := NewStockOrderService(scope, scope.orders)
	orderService.SetEventPublisher(publisher)

	return &fixture{
		scope:        scope,
		service:      service,
		orderService: orderService,
		publisher:    publisher,
	}
}

func (f *fixture) seedProduct(sku, name, code4 string) *catalog.Product {
	product, err := catalog.NewProduct(sku, name, code4)
	if err != nil {
		panic(err)
	}
	product.ClearDomainEvents()
	f.scope.products.products[product.ID] = *product
	return product
}

func (f *fixture) balance(warehouseID, productID uuid.UUID) decimal.Decimal {
	row, ok := f.scope.inventory.rows[inventoryKey(warehouseID, productID)]
	if !ok {
		return decimal.Zero
	}
	return row.Quantity
}
