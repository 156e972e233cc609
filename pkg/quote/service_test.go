package quote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/pricing/pkg/quote"
	"github.com/tournevent/pricing/pkg/quote/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newFixtureStore() *mock.Store {
	store := mock.NewStore()
	store.Sellers[1] = quote.Seller{ID: 1, Name: "Acme", Location: quote.Location{Latitude: 0, Longitude: 0}}
	store.Customers[2] = quote.Customer{ID: 2, Name: "Jane", Location: quote.Location{Latitude: 0, Longitude: 1}}
	store.Products[3] = quote.Product{ID: 3, SellerID: 1, Name: "Crate", Weight: 10, Length: 50, Width: 40, Height: 30}
	store.Warehouses[10] = quote.Warehouse{ID: 10, Location: quote.Location{Latitude: 0, Longitude: 0.5}, Capacity: 1000}
	store.Warehouses[20] = quote.Warehouse{ID: 20, Location: quote.Location{Latitude: 0, Longitude: 3}, Capacity: 1000}
	store.SeedInventory(10, 3, 100)
	store.SeedInventory(20, 3, 100)
	return store
}

func newTestService(store *mock.Store, cache *mock.Cache) *quote.Service {
	logger := otelzap.New(zap.NewNop())
	var c quote.Cache
	if cache != nil {
		c = cache
	}
	return quote.NewService(quote.Config{CheckCapacity: true}, store, c, logger, nil)
}

func TestService_Quote_Success(t *testing.T) {
	store := newFixtureStore()
	svc := newTestService(store, nil)

	result, err := svc.Quote(context.Background(), quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 2,
		DeliverySpeed: quote.SpeedStandard,
	})
	require.NoError(t, err)

	// Warehouse 10 is nearest to the seller; the leg to the customer is
	// about 55.6 km, which rides in a Mini Van.
	assert.Equal(t, int64(10), result.WarehouseID)
	assert.Equal(t, quote.ModeMiniVan, result.TransportMode)
	assert.Equal(t, 2, result.EstimatedDays)
	assert.InDelta(t, 55.6, result.DistanceKM, 0.1)

	// Recompute the expected charges through the same public pieces.
	distance := quote.Distance(store.Warehouses[10].Location, store.Customers[2].Location)
	transport := quote.ResolveTransport(distance, quote.SpeedStandard)
	expected := quote.Price(distance, store.Products[3], 2, quote.SpeedStandard, transport)

	assert.Equal(t, expected.FinalCost, result.FinalCost)
	assert.Equal(t, 10.0, result.CourierCharge)
	assert.Equal(t, 0.0, result.ExpressCharge)
	assert.GreaterOrEqual(t, result.FinalCost, result.BaseCost)
}

func TestService_Quote_EntityNotFound(t *testing.T) {
	tests := []struct {
		name string
		req  quote.Request
		kind quote.EntityKind
	}{
		{"seller", quote.Request{SellerID: 99, CustomerID: 2, ProductID: 3, Quantity: 1, DeliverySpeed: quote.SpeedStandard}, quote.KindSeller},
		{"customer", quote.Request{SellerID: 1, CustomerID: 99, ProductID: 3, Quantity: 1, DeliverySpeed: quote.SpeedStandard}, quote.KindCustomer},
		{"product", quote.Request{SellerID: 1, CustomerID: 2, ProductID: 99, Quantity: 1, DeliverySpeed: quote.SpeedStandard}, quote.KindProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFixtureStore(), nil)
			_, err := svc.Quote(context.Background(), tt.req)

			assert.ErrorIs(t, err, quote.ErrNotFound)
			var nf *quote.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, tt.kind, nf.Kind)
			assert.Equal(t, int64(99), nf.ID)
		})
	}
}

func TestService_Quote_InvalidInput(t *testing.T) {
	svc := newTestService(newFixtureStore(), nil)

	_, err := svc.Quote(context.Background(), quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 0,
		DeliverySpeed: quote.SpeedStandard,
	})
	assert.ErrorIs(t, err, quote.ErrInvalidInput)

	_, err = svc.Quote(context.Background(), quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 1,
		DeliverySpeed: "overnight",
	})
	assert.ErrorIs(t, err, quote.ErrInvalidInput)
}

func TestService_Quote_DistanceExceeded(t *testing.T) {
	store := newFixtureStore()
	// Roughly 4400 km from the warehouse.
	store.Customers[2] = quote.Customer{ID: 2, Location: quote.Location{Latitude: 0, Longitude: 40}}
	svc := newTestService(store, nil)

	_, err := svc.Quote(context.Background(), quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 2,
		DeliverySpeed: quote.SpeedStandard,
	})
	assert.ErrorIs(t, err, quote.ErrDistanceExceeded)
}

func TestService_Quote_NoWarehouseAvailable(t *testing.T) {
	store := newFixtureStore()
	svc := newTestService(store, nil)

	// More than any warehouse has in stock.
	_, err := svc.Quote(context.Background(), quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 500,
		DeliverySpeed: quote.SpeedStandard,
	})
	assert.ErrorIs(t, err, quote.ErrNoWarehouseAvailable)
}

func TestService_Quote_UpstreamUnavailable(t *testing.T) {
	store := newFixtureStore()
	store.OnFindSeller = func(ctx context.Context, id int64) (*quote.Seller, error) {
		return nil, errors.New("dial tcp: connection refused")
	}
	svc := newTestService(store, nil)

	_, err := svc.Quote(context.Background(), quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 2,
		DeliverySpeed: quote.SpeedStandard,
	})
	assert.ErrorIs(t, err, quote.ErrUpstreamUnavailable)
}

func TestService_Quote_CacheReadThrough(t *testing.T) {
	store := newFixtureStore()
	cache := mock.NewCache()
	svc := newTestService(store, cache)

	req := quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 2,
		DeliverySpeed: quote.SpeedStandard,
	}

	first, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	sellerLookups := store.SellerCalls()

	second, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	// The hit skipped the store entirely and returned the same quote.
	assert.Equal(t, sellerLookups, store.SellerCalls())
	assert.Equal(t, first, second)

	assert.Equal(t, []string{"combined:1:2:3:2:standard"}, cache.Sets())
	assert.Equal(t, quote.CacheTTL, cache.LastTTL())
}

func TestService_Quote_CacheFailureDegradesToRecompute(t *testing.T) {
	store := newFixtureStore()
	cache := mock.NewCache()
	cache.OnGet = func(ctx context.Context, key string) (*quote.Result, bool, error) {
		return nil, false, errors.New("redis: connection pool timeout")
	}
	svc := newTestService(store, cache)

	result, err := svc.Quote(context.Background(), quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 2,
		DeliverySpeed: quote.SpeedStandard,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.WarehouseID)
}

func TestService_WarehouseQuote_SharesPricingWithQuote(t *testing.T) {
	store := newFixtureStore()
	svc := newTestService(store, nil)
	ctx := context.Background()

	combined, err := svc.Quote(ctx, quote.Request{
		SellerID: 1, CustomerID: 2, ProductID: 3, Quantity: 2,
		DeliverySpeed: quote.SpeedExpress,
	})
	require.NoError(t, err)

	direct, err := svc.WarehouseQuote(ctx, quote.WarehouseRequest{
		WarehouseID: combined.WarehouseID, CustomerID: 2, ProductID: 3, Quantity: 2,
		DeliverySpeed: quote.SpeedExpress,
	})
	require.NoError(t, err)

	// Same warehouse, same leg: the two call shapes must agree on every
	// charge.
	assert.Equal(t, combined.DistanceKM, direct.DistanceKM)
	assert.Equal(t, combined.TransportMode, direct.TransportMode)
	assert.Equal(t, combined.BaseCost, direct.BaseCost)
	assert.Equal(t, combined.ExpressCharge, direct.ExpressCharge)
	assert.Equal(t, combined.FinalCost, direct.FinalCost)
	assert.Equal(t, combined.EstimatedDays, direct.EstimatedDays)
}

func TestService_WarehouseQuote_NotSubjectToDistanceCap(t *testing.T) {
	store := newFixtureStore()
	// The caller pinned a warehouse roughly 4400 km out; the direct path
	// prices it anyway.
	store.Customers[2] = quote.Customer{ID: 2, Location: quote.Location{Latitude: 0, Longitude: 40}}
	svc := newTestService(store, nil)

	result, err := svc.WarehouseQuote(context.Background(), quote.WarehouseRequest{
		WarehouseID: 10, CustomerID: 2, ProductID: 3, Quantity: 1,
		DeliverySpeed: quote.SpeedStandard,
	})
	require.NoError(t, err)
	assert.Equal(t, quote.ModeAeroplane, result.TransportMode)
	assert.Equal(t, 1, result.EstimatedDays)
}

func TestService_WarehouseQuote_CacheKey(t *testing.T) {
	store := newFixtureStore()
	cache := mock.NewCache()
	svc := newTestService(store, cache)

	_, err := svc.WarehouseQuote(context.Background(), quote.WarehouseRequest{
		WarehouseID: 10, CustomerID: 2, ProductID: 3, Quantity: 4,
		DeliverySpeed: quote.SpeedExpress,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"shipping:10:2:3:4:express"}, cache.Gets())
	assert.Equal(t, []string{"shipping:10:2:3:4:express"}, cache.Sets())
}

func TestService_WarehouseQuote_WarehouseNotFound(t *testing.T) {
	svc := newTestService(newFixtureStore(), nil)

	_, err := svc.WarehouseQuote(context.Background(), quote.WarehouseRequest{
		WarehouseID: 99, CustomerID: 2, ProductID: 3, Quantity: 1,
		DeliverySpeed: quote.SpeedStandard,
	})

	var nf *quote.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, quote.KindWarehouse, nf.Kind)
}

func TestService_NearestWarehouse(t *testing.T) {
	svc := newTestService(newFixtureStore(), nil)

	wh, err := svc.NearestWarehouse(context.Background(), 1, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), wh.ID)

	_, err = svc.NearestWarehouse(context.Background(), 1, 3, 0)
	assert.ErrorIs(t, err, quote.ErrInvalidInput)

	_, err = svc.NearestWarehouse(context.Background(), 99, 3, 1)
	assert.ErrorIs(t, err, quote.ErrNotFound)
}
