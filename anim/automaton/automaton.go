package automaton

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cwbudde/algo-automaton/anim/bezier"
	"github.com/cwbudde/algo-automaton/anim/channel"
	"github.com/cwbudde/algo-automaton/anim/curve"
	"github.com/cwbudde/algo-automaton/anim/fx"
)

var (
	// ErrCurveNotFound is returned for a curve index out of range.
	ErrCurveNotFound = errors.New("automaton: curve not found")
	// ErrChannelNotFound is returned for an unknown channel name.
	ErrChannelNotFound = errors.New("automaton: channel not found")
	// ErrDuplicateChannel is returned when a channel name is already in use.
	ErrDuplicateChannel = errors.New("automaton: duplicate channel name")
)

// Automaton owns the curves, channels and fx definitions of one timeline.
// It is not safe for concurrent use.
type Automaton struct {
	curves   []*curve.Curve
	channels []*channel.Channel
	names    []string
	byName   map[string]int

	registry *fx.Registry
	cfg      config

	time    float64
	pending []channel.Update
}

// New creates an empty automaton.
func New(opts ...Option) (*Automaton, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.registry == nil {
		cfg.registry = fx.DefaultRegistry()
	}
	for id, def := range cfg.defs {
		if err := cfg.registry.Put(id, def); err != nil {
			return nil, fmt.Errorf("automaton: fx definition %q: %w", id, err)
		}
	}

	return &Automaton{
		byName:   make(map[string]int),
		registry: cfg.registry,
		cfg:      cfg,
	}, nil
}

// AddCurve creates a curve resolving its fx sections against the automaton
// registry and returns it. Its index is the number of curves added before it.
func (a *Automaton) AddCurve(nodes []bezier.Node, sections []curve.FxSection) (*curve.Curve, error) {
	c, err := curve.New(nodes, sections, a.registry, a.cfg.curveOptions()...)
	if err != nil {
		return nil, fmt.Errorf("automaton: curve %d: %w", len(a.curves), err)
	}

	a.curves = append(a.curves, c)

	return c, nil
}

// Curve returns the curve at index.
func (a *Automaton) Curve(index int) (*curve.Curve, error) {
	if index < 0 || index >= len(a.curves) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrCurveNotFound, index, len(a.curves))
	}
	return a.curves[index], nil
}

// Curves returns all curves in index order.
func (a *Automaton) Curves() []*curve.Curve {
	return slices.Clone(a.curves)
}

// AddChannel creates a channel under name.
func (a *Automaton) AddChannel(name string, items ...channel.Item) (*channel.Channel, error) {
	if _, exists := a.byName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateChannel, name)
	}

	ch, err := channel.New(items...)
	if err != nil {
		return nil, fmt.Errorf("automaton: channel %q: %w", name, err)
	}

	a.byName[name] = len(a.channels)
	a.channels = append(a.channels, ch)
	a.names = append(a.names, name)

	return ch, nil
}

// Channel returns the channel registered under name.
func (a *Automaton) Channel(name string) (*channel.Channel, error) {
	i, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrChannelNotFound, name)
	}
	return a.channels[i], nil
}

// ChannelNames returns the channel names in insertion order.
func (a *Automaton) ChannelNames() []string {
	return slices.Clone(a.names)
}

// Auto returns the current value of the named channel. An unknown name
// creates an empty channel, whose value stays 0 until items are added.
func (a *Automaton) Auto(name string) float64 {
	if i, ok := a.byName[name]; ok {
		return a.channels[i].Value()
	}

	ch, err := a.AddChannel(name)
	if err != nil {
		a.cfg.logger.Warn("automaton channel not created", slog.String("channel", name), slog.Any("error", err))
		return 0
	}
	a.cfg.logger.Debug("automaton channel created on demand", slog.String("channel", name))

	return ch.Value()
}

// RegisterFxDefinition adds or replaces the definition under id and
// precalculates every curve, since any of them may reference it.
func (a *Automaton) RegisterFxDefinition(id string, def fx.Definition) error {
	if err := a.registry.Put(id, def); err != nil {
		return fmt.Errorf("automaton: fx definition %q: %w", id, err)
	}

	a.PrecalculateAll()

	return nil
}

// FxDefinition returns the definition registered under id.
func (a *Automaton) FxDefinition(id string) (fx.Definition, bool) {
	return a.registry.Lookup(id)
}

// FxDefinitionIDs returns the registered definition ids in sorted order.
func (a *Automaton) FxDefinitionIDs() []string {
	return a.registry.IDs()
}

// Resolution returns the curve sample density.
func (a *Automaton) Resolution() int {
	return a.cfg.resolution
}

// SetResolution changes the sample density of every curve.
func (a *Automaton) SetResolution(resolution int) error {
	if resolution <= 0 {
		return fmt.Errorf("%w: %d", curve.ErrInvalidResolution, resolution)
	}

	a.cfg.resolution = resolution
	for _, c := range a.curves {
		if err := c.SetResolution(resolution); err != nil {
			return err
		}
	}

	return nil
}

// PrecalculateAll re-renders every curve.
func (a *Automaton) PrecalculateAll() {
	for _, c := range a.curves {
		c.Precalculate()
	}
}

// Time returns the clock value of the last Update.
func (a *Automaton) Time() float64 {
	return a.time
}

// Update advances the clock to time, clamped to 0, and fires the pending
// updates of every channel in time order. Ties keep channel insertion order.
// time must not go backward unless Reset is called first. Subscribers must
// not call Update.
func (a *Automaton) Update(time float64) {
	if !(time >= 0) {
		time = 0
	}
	a.time = time

	pending := a.pending[:0]
	for _, ch := range a.channels {
		pending = ch.Consume(time, pending)
	}

	slices.SortStableFunc(pending, func(x, y channel.Update) int {
		return cmp.Compare(x.Time, y.Time)
	})

	for _, u := range pending {
		u.Fire()
	}

	a.pending = pending
}

// Reset rewinds every channel so the clock may move backward.
func (a *Automaton) Reset() {
	for _, ch := range a.channels {
		ch.Reset()
	}
}

// Seek resets and updates to time in one step.
func (a *Automaton) Seek(time float64) {
	a.Reset()
	a.Update(time)
}
