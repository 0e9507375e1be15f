package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/playperu/moneybags/internal/blobstore"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	StoreBackend blobstore.Backend `env:"STORE_BACKEND" envDefault:"sqlite"`
	DBPath       string            `env:"DB_PATH" envDefault:"data/moneybags.db"`
	RedisURL     string            `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	// StateKey is the blob key the game is saved under.
	StateKey string `env:"STATE_KEY" envDefault:"monopoly-loan-tracker"`

	// PublicURL is the page address share links point at.
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080/"`
	SeedDemo  bool   `env:"SEED_DEMO" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if !cfg.StoreBackend.Valid() {
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return &cfg, nil
}

// BlobOptions selects the blob store backend.
func (c *Config) BlobOptions() blobstore.Options {
	return blobstore.Options{
		Backend:  c.StoreBackend,
		DBPath:   c.DBPath,
		RedisURL: c.RedisURL,
	}
}
