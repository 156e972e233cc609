package quote

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// InventoryLookup is the slice of the Store the selector needs.
type InventoryLookup interface {
	FindInventory(ctx context.Context, warehouseID, productID int64) (*InventoryRecord, error)
}

// Selector picks the warehouse that fulfils an order. Selection is a pure
// read: it never reserves stock.
type Selector struct {
	// CheckCapacity additionally requires Warehouse.Capacity to cover the
	// requested quantity. The stock check alone is always applied.
	CheckCapacity bool
}

type candidate struct {
	warehouse  Warehouse
	distanceKM float64
}

// Select returns the eligible warehouse nearest to the seller. A
// warehouse is eligible when it has an inventory record for the product
// with at least the requested quantity available (and, with
// CheckCapacity, capacity covering the quantity). Ties on distance break
// on the lowest warehouse id. Every warehouse is visited once per call;
// inventory lookups run in parallel since each is independent and
// read-only.
func (s Selector) Select(ctx context.Context, sellerLoc Location, productID, quantity int64, warehouses []Warehouse, inv InventoryLookup) (*Warehouse, error) {
	candidates := make([]candidate, 0, len(warehouses))
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, wh := range warehouses {
		wh := wh
		g.Go(func() error {
			record, err := inv.FindInventory(ctx, wh.ID, productID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil // no record means zero stock
				}
				return Upstream("inventory lookup", err)
			}
			if record.AvailableUnits < quantity {
				return nil
			}
			if s.CheckCapacity && wh.Capacity < quantity {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			candidates = append(candidates, candidate{
				warehouse:  wh,
				distanceKM: Distance(sellerLoc, wh.Location),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoWarehouseAvailable
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.distanceKM < best.distanceKM ||
			(c.distanceKM == best.distanceKM && c.warehouse.ID < best.warehouse.ID) {
			best = c
		}
	}
	return &best.warehouse, nil
}
