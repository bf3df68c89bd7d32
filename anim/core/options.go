package core

import (
	"log/slog"

	"github.com/cwbudde/algo-automaton/internal/logging"
)

// DefaultResolution is the sample density (samples per second) used when no
// resolution is configured.
const DefaultResolution = 100

// Config defines settings shared by every timeline component.
type Config struct {
	// Resolution is the number of curve samples per second of timeline.
	Resolution int
	// Logger receives advisory diagnostics. Never nil after ApplyOptions.
	Logger *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default resolution and a silent logger.
func DefaultConfig() Config {
	return Config{
		Resolution: DefaultResolution,
		Logger:     logging.Nop(),
	}
}

// WithResolution sets the curve sample density. Non-positive values are ignored.
func WithResolution(resolution int) Option {
	return func(cfg *Config) {
		if resolution > 0 {
			cfg.Resolution = resolution
		}
	}
}

// WithLogger sets the diagnostics logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logging.OrNop(logger)
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
