// SPDX-License-Identifier: MIT

package ffi

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/lvlinalg/linalg"
)

// Config describes one façade instance: the numeric policy handed to the
// engine and the debug switch for the arena logger. The process-wide default
// instance is built from environment variables; tests build isolated
// instances directly.
type Config struct {
	// Epsilon is the singularity tolerance for Det/Inverse.
	Epsilon float64 `env:"LINALG_EPSILON" envDefault:"1e-9"`

	// MaxElements bounds rows*cols per matrix; exceeding it reports
	// StatusOutOfMemory at the boundary.
	MaxElements int `env:"LINALG_MAX_ELEMENTS" envDefault:"67108864"`

	// ValidateNaNInf rejects non-finite values at creation and SetItem.
	ValidateNaNInf bool `env:"LINALG_VALIDATE_NANINF" envDefault:"true"`

	// Debug enables a development zap logger on the arena.
	Debug bool `env:"LINALG_DEBUG" envDefault:"false"`
}

// DefaultConfig returns the documented defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		Epsilon:        linalg.DefaultEpsilon,
		MaxElements:    linalg.DefaultMaxElements,
		ValidateNaNInf: linalg.DefaultValidateNaNInf,
	}
}

// ConfigFromEnv loads the façade configuration from environment variables,
// falling back to the documented defaults for unset keys.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("ffi: parse env: %w", err)
	}

	return cfg, nil
}
