package automaton

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-automaton/anim/core"
	"github.com/cwbudde/algo-automaton/anim/fx"
)

// Option mutates automaton construction parameters.
type Option func(*config) error

type config struct {
	resolution int
	registry   *fx.Registry
	defs       map[string]fx.Definition
	logger     *slog.Logger
}

func defaultConfig() config {
	base := core.DefaultConfig()
	return config{
		resolution: base.Resolution,
		logger:     base.Logger,
	}
}

// WithResolution sets the curve sample density in samples per second.
func WithResolution(resolution int) Option {
	return func(cfg *config) error {
		if resolution <= 0 {
			return fmt.Errorf("automaton resolution must be > 0: %d", resolution)
		}
		cfg.resolution = resolution
		return nil
	}
}

// WithRegistry makes the automaton resolve fx sections against registry
// instead of a fresh registry of the built-in definitions. The registry is
// shared, not copied.
func WithRegistry(registry *fx.Registry) Option {
	return func(cfg *config) error {
		if registry == nil {
			return errors.New("automaton registry must not be nil")
		}
		cfg.registry = registry
		return nil
	}
}

// WithFxDefinitions adds or replaces definitions in the registry.
func WithFxDefinitions(defs map[string]fx.Definition) Option {
	return func(cfg *config) error {
		if cfg.defs == nil {
			cfg.defs = make(map[string]fx.Definition, len(defs))
		}
		for id, def := range defs {
			cfg.defs[id] = def
		}
		return nil
	}
}

// WithLogger sets the diagnostics logger shared with every curve.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger != nil {
			cfg.logger = logger
		}
		return nil
	}
}

func (cfg config) curveOptions() []core.Option {
	return []core.Option{
		core.WithResolution(cfg.resolution),
		core.WithLogger(cfg.logger),
	}
}
