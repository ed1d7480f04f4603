package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                = "STOREFRONT_APP_ENV"
	EnvPort                  = "STOREFRONT_APP_PORT"
	EnvLogLevel              = "STOREFRONT_LOG_LEVEL"
	EnvCatalogBaseURL        = "STOREFRONT_CATALOG_BASE_URL"
	EnvFreeShippingThreshold = "STOREFRONT_FREE_SHIPPING_THRESHOLD"
	EnvNotificationCapacity  = "STOREFRONT_NOTIFICATION_CAPACITY"
	EnvRedisURL              = "STOREFRONT_REDIS_URL"
	EnvRateLimitWindow       = "STOREFRONT_RATE_LIMIT_WINDOW"
	EnvRateLimitMax          = "STOREFRONT_RATE_LIMIT_MAX"
)

type Config struct {
	App           AppConfig
	Catalog       CatalogConfig
	Checkout      CheckoutConfig
	Notifications NotificationsConfig
	Redis         RedisConfig
	RateLimit     RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Checkout.FreeShippingThresholdAmount(); err != nil {
		return nil, err
	}
	if cfg.Notifications.Capacity <= 0 {
		return nil, fmt.Errorf("%s must be positive", EnvNotificationCapacity)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port            string        `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at the read-only products provider.
type CatalogConfig struct {
	BaseURL string `envconfig:"STOREFRONT_CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
}

func (c CatalogConfig) validate() error {
	u, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvCatalogBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", EnvCatalogBaseURL, c.BaseURL)
	}
	return nil
}

type CheckoutConfig struct {
	FreeShippingThreshold string `envconfig:"STOREFRONT_FREE_SHIPPING_THRESHOLD" default:"100"`
}

// FreeShippingThresholdAmount parses the configured threshold as a positive decimal.
func (c CheckoutConfig) FreeShippingThresholdAmount() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(c.FreeShippingThreshold))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", EnvFreeShippingThreshold, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be positive, got %s", EnvFreeShippingThreshold, amount)
	}
	return amount, nil
}

type NotificationsConfig struct {
	Capacity int `envconfig:"STOREFRONT_NOTIFICATION_CAPACITY" default:"50"`
}

// RedisConfig is optional; an empty URL and address disables the redis-backed middleware.
type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_WINDOW" default:"1m"`
	Max    int           `envconfig:"STOREFRONT_RATE_LIMIT_MAX" default:"120"`
}
