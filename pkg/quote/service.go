// Package quote implements the shipping-quote pipeline: warehouse
// selection, transport resolution and pricing over read-only reference
// data.
package quote

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxServiceDistanceKM is the furthest warehouse-to-customer
// distance the service will quote for.
const DefaultMaxServiceDistanceKM = 2000.0

// Config holds the quoting policy knobs.
type Config struct {
	// MaxServiceDistanceKM caps the warehouse-to-customer distance on the
	// seller-wide path. Zero means DefaultMaxServiceDistanceKM.
	MaxServiceDistanceKM float64

	// CheckCapacity toggles the warehouse-capacity eligibility filter.
	CheckCapacity bool

	// CacheTTL overrides the default quote cache TTL. Zero means CacheTTL.
	CacheTTL time.Duration
}

// Service orchestrates the quoting pipeline. All operations are pure,
// read-only computations over collaborator data; concurrent requests need
// no coordination.
type Service struct {
	store    Store
	cache    Cache
	selector Selector
	logger   *otelzap.Logger
	tracer   trace.Tracer

	maxDistanceKM float64
	cacheTTL      time.Duration
}

// NewService creates a quote service. cache may be nil, in which case
// every request is computed fresh.
func NewService(cfg Config, store Store, cache Cache, logger *otelzap.Logger, tracer trace.Tracer) *Service {
	maxDistance := cfg.MaxServiceDistanceKM
	if maxDistance == 0 {
		maxDistance = DefaultMaxServiceDistanceKM
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = CacheTTL
	}

	return &Service{
		store:         store,
		cache:         cache,
		selector:      Selector{CheckCapacity: cfg.CheckCapacity},
		logger:        logger,
		tracer:        tracer,
		maxDistanceKM: maxDistance,
		cacheTTL:      ttl,
	}
}

// Quote produces a seller-wide quote: the nearest feasible warehouse is
// chosen for the seller, then the shipment from that warehouse to the
// customer is priced.
func (s *Service) Quote(ctx context.Context, req Request) (*Result, error) {
	ctx, span := s.startSpan(ctx, "quote.Quote",
		attribute.Int64("seller_id", req.SellerID),
		attribute.Int64("product_id", req.ProductID),
	)
	defer span.End()

	if err := validateOrder(req.Quantity, req.DeliverySpeed); err != nil {
		return nil, err
	}

	key := CombinedKey(req)
	if result, ok := s.cacheGet(ctx, key); ok {
		return result, nil
	}

	var (
		seller   *Seller
		customer *Customer
		product  *Product
	)

	// Seller, customer and product are independent; fetch them in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		seller, err = s.store.FindSeller(gctx, req.SellerID)
		return s.storeErr("seller lookup", err)
	})
	g.Go(func() (err error) {
		customer, err = s.store.FindCustomer(gctx, req.CustomerID)
		return s.storeErr("customer lookup", err)
	})
	g.Go(func() (err error) {
		product, err = s.store.FindProduct(gctx, req.ProductID)
		return s.storeErr("product lookup", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	warehouses, err := s.store.ListWarehouses(ctx)
	if err != nil {
		return nil, s.storeErr("warehouse listing", err)
	}

	warehouse, err := s.selector.Select(ctx, seller.Location, req.ProductID, req.Quantity, warehouses, s.store)
	if err != nil {
		return nil, err
	}

	distanceKM := Distance(warehouse.Location, customer.Location)
	if distanceKM > s.maxDistanceKM {
		return nil, ErrDistanceExceeded
	}

	result := assembleResult(warehouse, distanceKM, *product, req.Quantity, req.DeliverySpeed)

	s.logger.Ctx(ctx).Info("Quote computed",
		zap.Int64("seller_id", req.SellerID),
		zap.Int64("warehouse_id", warehouse.ID),
		zap.Float64("distance_km", result.DistanceKM),
		zap.Float64("final_cost", result.FinalCost),
		zap.String("transport_mode", string(result.TransportMode)),
	)

	s.cacheSet(ctx, key, result)
	return result, nil
}

// WarehouseQuote produces a direct-warehouse quote: the caller pins the
// warehouse and no selection or distance cap applies. Pricing is shared
// with the seller-wide path.
func (s *Service) WarehouseQuote(ctx context.Context, req WarehouseRequest) (*Result, error) {
	ctx, span := s.startSpan(ctx, "quote.WarehouseQuote",
		attribute.Int64("warehouse_id", req.WarehouseID),
		attribute.Int64("product_id", req.ProductID),
	)
	defer span.End()

	if err := validateOrder(req.Quantity, req.DeliverySpeed); err != nil {
		return nil, err
	}

	key := ShippingKey(req)
	if result, ok := s.cacheGet(ctx, key); ok {
		return result, nil
	}

	var (
		warehouse *Warehouse
		customer  *Customer
		product   *Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		warehouse, err = s.store.FindWarehouse(gctx, req.WarehouseID)
		return s.storeErr("warehouse lookup", err)
	})
	g.Go(func() (err error) {
		customer, err = s.store.FindCustomer(gctx, req.CustomerID)
		return s.storeErr("customer lookup", err)
	})
	g.Go(func() (err error) {
		product, err = s.store.FindProduct(gctx, req.ProductID)
		return s.storeErr("product lookup", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	distanceKM := Distance(warehouse.Location, customer.Location)
	result := assembleResult(warehouse, distanceKM, *product, req.Quantity, req.DeliverySpeed)

	s.logger.Ctx(ctx).Info("Warehouse quote computed",
		zap.Int64("warehouse_id", req.WarehouseID),
		zap.Float64("distance_km", result.DistanceKM),
		zap.Float64("final_cost", result.FinalCost),
	)

	s.cacheSet(ctx, key, result)
	return result, nil
}

// NearestWarehouse exposes warehouse selection on its own: the nearest
// feasible warehouse for a seller's order, without pricing.
func (s *Service) NearestWarehouse(ctx context.Context, sellerID, productID, quantity int64) (*Warehouse, error) {
	ctx, span := s.startSpan(ctx, "quote.NearestWarehouse",
		attribute.Int64("seller_id", sellerID),
		attribute.Int64("product_id", productID),
	)
	defer span.End()

	if quantity <= 0 {
		return nil, InvalidInput("quantity must be positive, got %d", quantity)
	}

	seller, err := s.store.FindSeller(ctx, sellerID)
	if err != nil {
		return nil, s.storeErr("seller lookup", err)
	}

	warehouses, err := s.store.ListWarehouses(ctx)
	if err != nil {
		return nil, s.storeErr("warehouse listing", err)
	}

	return s.selector.Select(ctx, seller.Location, productID, quantity, warehouses, s.store)
}

// assembleResult prices one shipment leg and builds the quote breakdown.
// Both call shapes funnel through here so they can never diverge on
// charges.
func assembleResult(warehouse *Warehouse, distanceKM float64, product Product, quantity int64, speed DeliverySpeed) *Result {
	transport := ResolveTransport(distanceKM, speed)
	pricing := Price(distanceKM, product, quantity, speed, transport)

	return &Result{
		WarehouseID:       warehouse.ID,
		WarehouseLocation: warehouse.Location,
		DistanceKM:        roundMoney(distanceKM),
		TransportMode:     transport.Mode,
		BaseCost:          roundMoney(pricing.BaseCost),
		CourierCharge:     pricing.CourierCharge,
		ExpressCharge:     roundMoney(pricing.ExpressCharge),
		FinalCost:         pricing.FinalCost,
		EstimatedDays:     transport.ETADays,
	}
}

func validateOrder(quantity int64, speed DeliverySpeed) error {
	if quantity <= 0 {
		return InvalidInput("quantity must be positive, got %d", quantity)
	}
	if _, ok := ParseDeliverySpeed(string(speed)); !ok {
		return InvalidInput("unrecognized delivery speed %q", speed)
	}
	return nil
}

// storeErr normalizes collaborator failures: absences pass through as
// not-found, everything else (timeouts, transport errors) becomes
// upstream unavailability.
func (s *Service) storeErr(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return Upstream(op, err)
}

func (s *Service) cacheGet(ctx context.Context, key string) (*Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	result, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// Cache trouble degrades to a recompute, never a failure.
		s.logger.Ctx(ctx).Warn("Quote cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return result, ok
}

func (s *Service) cacheSet(ctx context.Context, key string, result *Result) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, result, s.cacheTTL); err != nil {
		s.logger.Ctx(ctx).Warn("Quote cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
