package quote

import (
	"context"
	"fmt"
	"time"
)

// Cache is the read-through quote cache. It is an opaque key/value store
// with TTL semantics and no transactional guarantee: concurrent identical
// requests may both miss and recompute, which is acceptable because
// quoting is idempotent.
//
// Get reports a miss with ok == false; errors are reserved for transport
// failures, which the orchestrator degrades to a recompute.
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	SetWithTTL(ctx context.Context, key string, value *Result, ttl time.Duration) error
}

// CombinedKey is the cache key for a seller-wide quote.
func CombinedKey(req Request) string {
	return fmt.Sprintf("combined:%d:%d:%d:%d:%s",
		req.SellerID, req.CustomerID, req.ProductID, req.Quantity, req.DeliverySpeed)
}

// ShippingKey is the cache key for a direct-warehouse quote.
func ShippingKey(req WarehouseRequest) string {
	return fmt.Sprintf("shipping:%d:%d:%d:%d:%s",
		req.WarehouseID, req.CustomerID, req.ProductID, req.Quantity, req.DeliverySpeed)
}
