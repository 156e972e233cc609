package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port           int           `envconfig:"PORT" default:"80"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// Reference data store
	MySQLDSN string `envconfig:"MYSQL_DSN" default:"pricing:pricing@tcp(localhost:3306)/pricing?parseTime=true"`

	// Quote cache
	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	CacheEnabled bool          `envconfig:"CACHE_ENABLED" default:"true"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"1800s"`

	// Quoting policy
	MaxServiceDistanceKM   float64 `envconfig:"MAX_SERVICE_DISTANCE_KM" default:"2000"`
	WarehouseCapacityCheck bool    `envconfig:"WAREHOUSE_CAPACITY_CHECK" default:"true"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.claude.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"logistics-pricing"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("cache.enabled", c.CacheEnabled),
		attribute.Bool("policy.capacity_check", c.WarehouseCapacityCheck),
		attribute.Float64("policy.max_service_distance_km", c.MaxServiceDistanceKM),
	}
}
