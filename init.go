package main

import (
	"context"

	"github.com/tournevent/pricing/internal/cache/redis"
	"github.com/tournevent/pricing/internal/config"
	"github.com/tournevent/pricing/internal/store/mysql"
	"github.com/tournevent/pricing/internal/telemetry"
	"github.com/tournevent/pricing/pkg/quote"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

// initQuoteService wires the reference store, the quote cache and the
// quoting policy into a quote.Service. The returned cleanup closes the
// cache connection.
func initQuoteService(ctx context.Context, cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) (*quote.Service, func(), error) {
	store, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		return nil, nil, err
	}

	var cache quote.Cache
	cleanup := func() {}
	if cfg.CacheEnabled {
		redisCache, err := redis.New(ctx, cfg.RedisAddr)
		if err != nil {
			// The cache is an optimization; start degraded rather than fail.
			logger.Warn("Quote cache unavailable, continuing without it",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			cache = redisCache
			cleanup = func() { redisCache.Close() }
		}
	}

	service := quote.NewService(quote.Config{
		MaxServiceDistanceKM: cfg.MaxServiceDistanceKM,
		CheckCapacity:        cfg.WarehouseCapacityCheck,
		CacheTTL:             cfg.CacheTTL,
	}, store, cache, logger, tracer)

	return service, cleanup, nil
}
