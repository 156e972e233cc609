package quote

import (
	"context"
)

// Store is the read-only collaborator that serves reference data. All
// lookups honour context cancellation; implementations signal absence
// with a NotFoundError and transient failures with any other error,
// which the orchestrator reports as upstream unavailability.
type Store interface {
	FindSeller(ctx context.Context, id int64) (*Seller, error)
	FindCustomer(ctx context.Context, id int64) (*Customer, error)
	FindProduct(ctx context.Context, id int64) (*Product, error)
	FindWarehouse(ctx context.Context, id int64) (*Warehouse, error)
	ListWarehouses(ctx context.Context) ([]Warehouse, error)

	// FindInventory returns the stock record for a (warehouse, product)
	// pair, or a NotFoundError when no record exists.
	FindInventory(ctx context.Context, warehouseID, productID int64) (*InventoryRecord, error)
}
