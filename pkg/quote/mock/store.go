// Package mock provides in-memory Store and Cache implementations for
// testing the quote pipeline.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/tournevent/pricing/pkg/quote"
)

// Store is an in-memory quote.Store backed by fixture maps. Every lookup
// can be overridden per test via the On* hooks; the default behavior
// serves the seeded fixtures and reports absences as not-found.
type Store struct {
	Sellers    map[int64]quote.Seller
	Customers  map[int64]quote.Customer
	Products   map[int64]quote.Product
	Warehouses map[int64]quote.Warehouse
	Inventory  map[[2]int64]quote.InventoryRecord // keyed by (warehouseID, productID)

	OnFindSeller     func(ctx context.Context, id int64) (*quote.Seller, error)
	OnFindCustomer   func(ctx context.Context, id int64) (*quote.Customer, error)
	OnFindProduct    func(ctx context.Context, id int64) (*quote.Product, error)
	OnFindWarehouse  func(ctx context.Context, id int64) (*quote.Warehouse, error)
	OnListWarehouses func(ctx context.Context) ([]quote.Warehouse, error)
	OnFindInventory  func(ctx context.Context, warehouseID, productID int64) (*quote.InventoryRecord, error)

	mu             sync.Mutex
	inventoryCalls int
	sellerCalls    int
}

// NewStore creates an empty mock store.
func NewStore() *Store {
	return &Store{
		Sellers:    make(map[int64]quote.Seller),
		Customers:  make(map[int64]quote.Customer),
		Products:   make(map[int64]quote.Product),
		Warehouses: make(map[int64]quote.Warehouse),
		Inventory:  make(map[[2]int64]quote.InventoryRecord),
	}
}

// SeedInventory records stock for a (warehouse, product) pair.
func (s *Store) SeedInventory(warehouseID, productID, units int64) {
	s.Inventory[[2]int64{warehouseID, productID}] = quote.InventoryRecord{
		WarehouseID:    warehouseID,
		ProductID:      productID,
		AvailableUnits: units,
	}
}

// InventoryCalls reports how many inventory lookups were made.
func (s *Store) InventoryCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventoryCalls
}

// SellerCalls reports how many seller lookups were made.
func (s *Store) SellerCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sellerCalls
}

func (s *Store) FindSeller(ctx context.Context, id int64) (*quote.Seller, error) {
	s.mu.Lock()
	s.sellerCalls++
	s.mu.Unlock()

	if s.OnFindSeller != nil {
		return s.OnFindSeller(ctx, id)
	}
	if seller, ok := s.Sellers[id]; ok {
		return &seller, nil
	}
	return nil, quote.NotFound(quote.KindSeller, id)
}

func (s *Store) FindCustomer(ctx context.Context, id int64) (*quote.Customer, error) {
	if s.OnFindCustomer != nil {
		return s.OnFindCustomer(ctx, id)
	}
	if customer, ok := s.Customers[id]; ok {
		return &customer, nil
	}
	return nil, quote.NotFound(quote.KindCustomer, id)
}

func (s *Store) FindProduct(ctx context.Context, id int64) (*quote.Product, error) {
	if s.OnFindProduct != nil {
		return s.OnFindProduct(ctx, id)
	}
	if product, ok := s.Products[id]; ok {
		return &product, nil
	}
	return nil, quote.NotFound(quote.KindProduct, id)
}

func (s *Store) FindWarehouse(ctx context.Context, id int64) (*quote.Warehouse, error) {
	if s.OnFindWarehouse != nil {
		return s.OnFindWarehouse(ctx, id)
	}
	if warehouse, ok := s.Warehouses[id]; ok {
		return &warehouse, nil
	}
	return nil, quote.NotFound(quote.KindWarehouse, id)
}

func (s *Store) ListWarehouses(ctx context.Context) ([]quote.Warehouse, error) {
	if s.OnListWarehouses != nil {
		return s.OnListWarehouses(ctx)
	}
	warehouses := make([]quote.Warehouse, 0, len(s.Warehouses))
	for _, wh := range s.Warehouses {
		warehouses = append(warehouses, wh)
	}
	return warehouses, nil
}

func (s *Store) FindInventory(ctx context.Context, warehouseID, productID int64) (*quote.InventoryRecord, error) {
	s.mu.Lock()
	s.inventoryCalls++
	s.mu.Unlock()

	if s.OnFindInventory != nil {
		return s.OnFindInventory(ctx, warehouseID, productID)
	}
	if record, ok := s.Inventory[[2]int64{warehouseID, productID}]; ok {
		return &record, nil
	}
	return nil, quote.NotFound(quote.KindInventory, productID)
}

// Cache is an in-memory quote.Cache that records every get and set, for
// asserting read-through behavior.
type Cache struct {
	OnGet func(ctx context.Context, key string) (*quote.Result, bool, error)
	OnSet func(ctx context.Context, key string, value *quote.Result, ttl time.Duration) error

	mu      sync.Mutex
	entries map[string]*quote.Result
	gets    []string
	sets    []string
	lastTTL time.Duration
}

// NewCache creates an empty mock cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*quote.Result)}
}

func (c *Cache) Get(ctx context.Context, key string) (*quote.Result, bool, error) {
	c.mu.Lock()
	c.gets = append(c.gets, key)
	c.mu.Unlock()

	if c.OnGet != nil {
		return c.OnGet(ctx, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[key]
	return result, ok, nil
}

func (c *Cache) SetWithTTL(ctx context.Context, key string, value *quote.Result, ttl time.Duration) error {
	c.mu.Lock()
	c.sets = append(c.sets, key)
	c.lastTTL = ttl
	c.mu.Unlock()

	if c.OnSet != nil {
		return c.OnSet(ctx, key, value, ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

// Gets returns the keys requested so far.
func (c *Cache) Gets() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.gets...)
}

// Sets returns the keys stored so far.
func (c *Cache) Sets() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sets...)
}

// LastTTL returns the TTL of the most recent store.
func (c *Cache) LastTTL() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTTL
}
