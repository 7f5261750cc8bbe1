// Package config loads service settings from defaults, an optional YAML file
// and ORDERSVC_ environment variables, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

const envPrefix = "ORDERSVC_"

type Config struct {
	App struct {
		Name            string        `koanf:"name"`
		HTTPAddr        string        `koanf:"http_addr"`
		GRPCAddr        string        `koanf:"grpc_addr"`
		LogLevel        string        `koanf:"log_level"`
		LineConcurrency int           `koanf:"line_concurrency"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"app"`

	Tracing struct {
		Enabled     bool   `koanf:"enabled"`
		Endpoint    string `koanf:"endpoint"`
		Environment string `koanf:"environment"`
	} `koanf:"tracing"`

	Redis struct {
		// Addr empty disables the price cache and event publishing.
		Addr          string        `koanf:"addr"`
		Password      string        `koanf:"password"`
		PriceTTL      time.Duration `koanf:"price_ttl"`
		EventsChannel string        `koanf:"events_channel"`
	} `koanf:"redis"`

	Rabbit struct {
		// URL empty makes acknowledgments go to the log instead of a queue.
		URL      string `koanf:"url"`
		Exchange string `koanf:"exchange"`
		AckQueue string `koanf:"ack_queue"`
	} `koanf:"rabbitmq"`

	RunLog struct {
		// Path empty keeps the run log in memory, bounded to MaxRuns runs.
		Path    string `koanf:"path"`
		MaxRuns int    `koanf:"max_runs"`
	} `koanf:"runlog"`

	Catalog struct {
		// Prices maps product codes to unit prices, e.g. W1234: "12.50".
		Prices map[string]string `koanf:"prices"`
		// Promotions maps promotion codes to per-product prices.
		Promotions map[string]map[string]string `koanf:"promotions"`
	} `koanf:"catalog"`
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":             "order-service",
		"app.http_addr":        ":8080",
		"app.grpc_addr":        ":9090",
		"app.log_level":        "info",
		"app.line_concurrency": 4,
		"app.shutdown_timeout": "10s",
		"tracing.enabled":      false,
		"tracing.endpoint":     "localhost:4317",
		"tracing.environment":  "local",
		"redis.price_ttl":      "5m",
		"redis.events_channel": "orders.events",
		"rabbitmq.exchange":    "",
		"rabbitmq.ack_queue":   "order.acknowledgments",
		"runlog.max_runs":      1000,
		"catalog.prices.W1234": "10.00",
		"catalog.prices.W5678": "25.00",
		"catalog.prices.G123":  "4.50",
		"catalog.prices.G456":  "12.00",

		"catalog.promotions.SPRING.W1234": "8.00",
	}
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment are used.
//
// Nested keys are addressed from the environment with a double underscore:
// ORDERSVC_REDIS__ADDR=localhost:6379 sets redis.addr.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" && c.App.GRPCAddr == "" {
		return fmt.Errorf("config: app.http_addr or app.grpc_addr required")
	}
	switch strings.ToLower(c.App.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: app.log_level %q not one of debug, info, warn, error", c.App.LogLevel)
	}
	if c.App.LineConcurrency < 1 {
		return fmt.Errorf("config: app.line_concurrency must be at least 1")
	}
	if c.RunLog.Path == "" && c.RunLog.MaxRuns < 1 {
		return fmt.Errorf("config: runlog.max_runs must be at least 1")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("config: tracing.endpoint required when tracing is enabled")
	}
	for code, price := range c.Catalog.Prices {
		if _, err := decimal.NewFromString(price); err != nil {
			return fmt.Errorf("config: catalog.prices.%s: %w", code, err)
		}
	}
	for promo, prices := range c.Catalog.Promotions {
		for code, price := range prices {
			if _, err := decimal.NewFromString(price); err != nil {
				return fmt.Errorf("config: catalog.promotions.%s.%s: %w", promo, code, err)
			}
		}
	}
	return nil
}
