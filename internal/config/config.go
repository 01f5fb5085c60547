// Package config loads the server tunables from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/janpfeifer/GoMemory/internal/game"
)

// Config of the GoMemory server.
type Config struct {
	// Addr to listen on. Empty means an automatically chosen port on localhost.
	Addr string `env:"GOMEMORY_ADDR"`

	// SymbolCount is the number of distinct symbols, the board has twice as many cards.
	SymbolCount int `env:"GOMEMORY_SYMBOL_COUNT" envDefault:"4"`

	// MismatchDelay is how long a mismatched pair stays face-up.
	MismatchDelay time.Duration `env:"GOMEMORY_MISMATCH_DELAY" envDefault:"1s"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		SymbolCount:   game.DefaultSymbolCount,
		MismatchDelay: game.DefaultMismatchDelay,
	}
}

// Load parses the configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the tunables are in range.
func (c Config) Validate() error {
	if c.SymbolCount < 1 || c.SymbolCount > game.NumSymbolImages {
		return fmt.Errorf("symbol count must be between 1 and %d, got %d", game.NumSymbolImages, c.SymbolCount)
	}
	if c.MismatchDelay < 0 {
		return fmt.Errorf("mismatch delay must not be negative, got %s", c.MismatchDelay)
	}
	return nil
}
