// Package server exposes the quoting pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/pricing/internal/telemetry"
	"github.com/tournevent/pricing/pkg/quote"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the pricing service.
type Server struct {
	port           int
	requestTimeout time.Duration
	quotes         *quote.Service
	logger         *otelzap.Logger
	metrics        *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port           int
	RequestTimeout time.Duration
}

// New creates a new server instance.
func New(cfg Config, quotes *quote.Service, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Server{
		port:           cfg.Port,
		requestTimeout: timeout,
		quotes:         quotes,
		logger:         logger,
		metrics:        metrics,
	}
}

// Handler returns the route table, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/shipping-charge", s.handleShippingCharge)
	mux.HandleFunc("GET /api/v1/shipping-charge/breakdown", s.handleBreakdown)
	mux.HandleFunc("POST /api/v1/shipping-charge/calculate", s.handleCalculate)
	mux.HandleFunc("GET /api/v1/warehouse/nearest", s.handleNearestWarehouse)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleShippingCharge quotes a shipment from a caller-pinned warehouse
// and responds with the chargeable total only.
func (s *Server) handleShippingCharge(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	req, err := parseWarehouseRequest(r)
	if err != nil {
		s.writeError(ctx, w, "warehouse_quote", err, started)
		return
	}

	result, err := s.quotes.WarehouseQuote(ctx, req)
	if err != nil {
		s.writeError(ctx, w, "warehouse_quote", err, started)
		return
	}

	s.metrics.RecordQuote("warehouse_quote", "ok", time.Since(started).Seconds())
	writeJSON(w, http.StatusOK, map[string]float64{"shippingCharge": result.FinalCost})
}

// handleBreakdown is the detailed variant of the direct-warehouse path.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	req, err := parseWarehouseRequest(r)
	if err != nil {
		s.writeError(ctx, w, "breakdown", err, started)
		return
	}

	result, err := s.quotes.WarehouseQuote(ctx, req)
	if err != nil {
		s.writeError(ctx, w, "breakdown", err, started)
		return
	}

	s.metrics.RecordQuote("breakdown", "ok", time.Since(started).Seconds())
	writeJSON(w, http.StatusOK, result)
}

type calculateRequest struct {
	SellerID      int64  `json:"sellerId"`
	CustomerID    int64  `json:"customerId"`
	ProductID     int64  `json:"productId"`
	Quantity      int64  `json:"quantity"`
	DeliverySpeed string `json:"deliverySpeed"`
}

type nearestWarehouseResponse struct {
	WarehouseID       int64          `json:"warehouseId"`
	WarehouseLocation quote.Location `json:"warehouseLocation"`
}

type calculateResponse struct {
	ShippingCharge   float64                  `json:"shippingCharge"`
	NearestWarehouse nearestWarehouseResponse `json:"nearestWarehouse"`
}

// handleCalculate is the aggregate path: warehouse selection plus
// pricing in one call.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	var body calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(ctx, w, "combined_quote", quote.InvalidInput("invalid JSON body: %v", err), started)
		return
	}

	result, err := s.quotes.Quote(ctx, quote.Request{
		SellerID:      body.SellerID,
		CustomerID:    body.CustomerID,
		ProductID:     body.ProductID,
		Quantity:      body.Quantity,
		DeliverySpeed: quote.DeliverySpeed(body.DeliverySpeed),
	})
	if err != nil {
		s.writeError(ctx, w, "combined_quote", err, started)
		return
	}

	s.metrics.RecordQuote("combined_quote", "ok", time.Since(started).Seconds())
	writeJSON(w, http.StatusOK, calculateResponse{
		ShippingCharge: result.FinalCost,
		NearestWarehouse: nearestWarehouseResponse{
			WarehouseID:       result.WarehouseID,
			WarehouseLocation: result.WarehouseLocation,
		},
	})
}

func (s *Server) handleNearestWarehouse(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	sellerID, err := queryInt64(r, "sellerId")
	if err != nil {
		s.writeError(ctx, w, "nearest_warehouse", err, started)
		return
	}
	productID, err := queryInt64(r, "productId")
	if err != nil {
		s.writeError(ctx, w, "nearest_warehouse", err, started)
		return
	}
	quantity, err := queryInt64(r, "quantity")
	if err != nil {
		s.writeError(ctx, w, "nearest_warehouse", err, started)
		return
	}

	warehouse, err := s.quotes.NearestWarehouse(ctx, sellerID, productID, quantity)
	if err != nil {
		s.writeError(ctx, w, "nearest_warehouse", err, started)
		return
	}

	s.metrics.RecordQuote("nearest_warehouse", "ok", time.Since(started).Seconds())
	writeJSON(w, http.StatusOK, nearestWarehouseResponse{
		WarehouseID:       warehouse.ID,
		WarehouseLocation: warehouse.Location,
	})
}

func parseWarehouseRequest(r *http.Request) (quote.WarehouseRequest, error) {
	var req quote.WarehouseRequest
	var err error

	if req.WarehouseID, err = queryInt64(r, "warehouseId"); err != nil {
		return req, err
	}
	if req.CustomerID, err = queryInt64(r, "customerId"); err != nil {
		return req, err
	}
	if req.ProductID, err = queryInt64(r, "productId"); err != nil {
		return req, err
	}

	// quantity defaults to 1 when omitted
	if r.URL.Query().Get("quantity") == "" {
		req.Quantity = 1
	} else if req.Quantity, err = queryInt64(r, "quantity"); err != nil {
		return req, err
	}

	req.DeliverySpeed = quote.DeliverySpeed(r.URL.Query().Get("deliverySpeed"))
	return req, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, quote.InvalidInput("missing query parameter %q", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, quote.InvalidInput("query parameter %q must be an integer", name)
	}
	return v, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a pipeline error to a response status. Unexpected
// failures are logged with a correlation id and surfaced generically.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, operation string, err error, started time.Time) {
	var status int
	var outcome string
	message := err.Error()

	switch {
	case errors.Is(err, quote.ErrNotFound):
		status, outcome = http.StatusNotFound, "not_found"
	case errors.Is(err, quote.ErrInvalidInput):
		status, outcome = http.StatusBadRequest, "invalid_input"
	case errors.Is(err, quote.ErrNoWarehouseAvailable):
		status, outcome = http.StatusUnprocessableEntity, "no_warehouse"
	case errors.Is(err, quote.ErrDistanceExceeded):
		status, outcome = http.StatusUnprocessableEntity, "distance_exceeded"
	case errors.Is(err, quote.ErrUpstreamUnavailable):
		status, outcome = http.StatusServiceUnavailable, "upstream_unavailable"
		message = "upstream unavailable"
	default:
		status, outcome = http.StatusInternalServerError, "error"
		errID := uuid.New().String()
		s.logger.Ctx(ctx).Error("Unexpected quote failure",
			zap.String("operation", operation),
			zap.String("error_id", errID),
			zap.Error(err),
		)
		message = "internal error (id " + errID + ")"
	}

	s.metrics.RecordQuote(operation, outcome, time.Since(started).Seconds())
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
