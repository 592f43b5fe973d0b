// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/codeGROOVE-dev/worldclock/pkg/catalog"
	"github.com/codeGROOVE-dev/worldclock/pkg/geo"
)

// Config holds the server settings.
type Config struct {
	HTTPAddr   string        `env:"HTTP_ADDR" envDefault:":8080"`
	StateFile  string        `env:"STATE_FILE"`
	CatalogURL string        `env:"CATALOG_URL"`
	ZoneAPIURL string        `env:"ZONE_API_URL"`
	GeocodeURL string        `env:"GEOCODE_URL"`
	CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	LogLevel   slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load parses the environment and fills in the defaults that live
// with their packages.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = catalog.DefaultURL
	}
	if cfg.ZoneAPIURL == "" {
		cfg.ZoneAPIURL = geo.DefaultZoneAPIURL
	}
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = geo.DefaultGeocodeURL
	}
	return &cfg, nil
}
