// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Addr        string `env:"DARTS_HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	AutoMigrate bool   `env:"DARTS_AUTO_MIGRATE" envDefault:"true"`
	// SnapshotPath is the SQLite file holding the in-progress match.
	SnapshotPath string   `env:"DARTS_SNAPSHOT_PATH" envDefault:"darts-snapshot.db"`
	CORSOrigins  []string `env:"DARTS_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	// RateLimit requests per RateWindow per client IP on match creation and
	// scoreboard connects. Zero disables limiting.
	RateLimit       int           `env:"DARTS_RATE_LIMIT" envDefault:"20"`
	RateWindow      time.Duration `env:"DARTS_RATE_WINDOW" envDefault:"1m"`
	WalkOnTimeout   time.Duration `env:"DARTS_WALK_ON_TIMEOUT" envDefault:"2s"`
	ShutdownTimeout time.Duration `env:"DARTS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads a .env file when present and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the environment without touching .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("DARTS_RATE_LIMIT must not be negative")
	}
	return &cfg, nil
}
