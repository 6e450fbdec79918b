// Package config handles configuration loading for the user service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, loaded once at startup and
// injected into constructors. Nothing reads the environment after Load.
type Config struct {
	DatabaseURL string        `env:"DATABASE_URL,required"`
	Host        string        `env:"HOST" envDefault:"localhost"`
	Port        string        `env:"PORT" envDefault:"5000"`
	JWTSecret   string        `env:"JWT_SECRET,required"`
	JWTExpiry   time.Duration `env:"JWT_EXPIRY" envDefault:"1h"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`
	Environment string        `env:"ENVIRONMENT" envDefault:"development"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	return cfg, nil
}
