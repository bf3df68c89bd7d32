package curve

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-automaton/anim/bezier"
	"github.com/cwbudde/algo-automaton/anim/buffer"
	"github.com/cwbudde/algo-automaton/anim/core"
	"github.com/cwbudde/algo-automaton/anim/fx"
)

var (
	// ErrNoNodes is returned when a curve is built without nodes.
	ErrNoNodes = errors.New("curve: no nodes")
	// ErrNodesNotSorted is returned when node times are not strictly increasing.
	ErrNodesNotSorted = errors.New("curve: node times must be strictly increasing")
	// ErrInvalidResolution is returned for a non-positive resolution.
	ErrInvalidResolution = errors.New("curve: resolution must be positive")
)

// Curve owns nodes, fx sections and the sample table rendered from them.
type Curve struct {
	nodes      []bezier.Node
	fxs        []FxSection
	resolver   fx.Resolver
	resolution int
	logger     *slog.Logger

	values   []float64
	noInterp []bool
	statuses []Status

	scratch buffer.Arena
	ctx     fx.Context
}

// New builds a curve and precalculates it. resolver may be nil, in which case
// every fx section is reported as unresolved. Resolution and logger come from
// opts.
func New(nodes []bezier.Node, sections []FxSection, resolver fx.Resolver, opts ...core.Option) (*Curve, error) {
	err := validateNodes(nodes)
	if err != nil {
		return nil, err
	}

	cfg := core.ApplyOptions(opts...)

	c := &Curve{
		nodes:      cloneNodes(nodes),
		fxs:        cloneSections(sections),
		resolver:   resolver,
		resolution: cfg.Resolution,
		logger:     cfg.Logger,
	}
	c.Precalculate()

	return c, nil
}

// SetNodes replaces the nodes and precalculates.
func (c *Curve) SetNodes(nodes []bezier.Node) error {
	err := validateNodes(nodes)
	if err != nil {
		return err
	}

	c.nodes = cloneNodes(nodes)
	c.Precalculate()

	return nil
}

// SetFxSections replaces the fx sections and precalculates.
func (c *Curve) SetFxSections(sections []FxSection) {
	c.fxs = cloneSections(sections)
	c.Precalculate()
}

// SetResolution changes the sample density and precalculates.
func (c *Curve) SetResolution(resolution int) error {
	if resolution <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}

	c.resolution = resolution
	c.Precalculate()

	return nil
}

// SetResolver changes where fx definitions are looked up and precalculates.
func (c *Curve) SetResolver(resolver fx.Resolver) {
	c.resolver = resolver
	c.Precalculate()
}

// Nodes returns a copy of the nodes.
func (c *Curve) Nodes() []bezier.Node {
	return cloneNodes(c.nodes)
}

// FxSections returns a copy of the fx sections.
func (c *Curve) FxSections() []FxSection {
	return cloneSections(c.fxs)
}

// Length returns the time of the last node.
func (c *Curve) Length() float64 {
	return c.nodes[len(c.nodes)-1].Time
}

// Resolution returns the sample density in samples per second.
func (c *Curve) Resolution() int {
	return c.resolution
}

// Values returns a copy of the sample table.
func (c *Curve) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out
}

// Statuses returns the diagnostics of the last precalculation.
func (c *Curve) Statuses() []Status {
	out := make([]Status, len(c.statuses))
	copy(out, c.statuses)
	return out
}

// Healthy reports whether the last precalculation raised no error-level status.
func (c *Curve) Healthy() bool {
	for _, s := range c.statuses {
		if s.Level == LevelError {
			return false
		}
	}
	return true
}

// Sample returns the curve value at time. Times before 0 (and NaN) return
// the first sample, times at or after Length the last; anything else interpolates
// linearly between the two neighbouring samples.
func (c *Curve) Sample(time float64) float64 {
	last := len(c.values) - 1
	if !(time >= 0) {
		return c.values[0]
	}
	if time >= c.Length() || last == 0 {
		return c.values[last]
	}

	index := time * float64(c.resolution)
	i := int(index)
	if i >= last {
		return c.values[last]
	}
	frac := index - float64(i)

	v0 := c.values[i]
	v1 := c.values[i+1]
	if c.noInterp[i] {
		// Continue the incoming slope instead of blending across the step.
		v1 = 2*v0 - c.values[max(i-1, 0)]
	}

	return core.Lerp(v0, v1, frac)
}

func validateNodes(nodes []bezier.Node) error {
	if len(nodes) == 0 {
		return ErrNoNodes
	}

	for i := 1; i < len(nodes); i++ {
		if !(nodes[i].Time > nodes[i-1].Time) {
			return fmt.Errorf("%w: node %d at %g follows %g", ErrNodesNotSorted, i, nodes[i].Time, nodes[i-1].Time)
		}
	}

	return nil
}

func cloneNodes(in []bezier.Node) []bezier.Node {
	out := make([]bezier.Node, len(in))
	copy(out, in)
	return out
}

func ensureFlags(buf []bool, n int) []bool {
	if cap(buf) >= n {
		buf = buf[:n]
	} else {
		buf = make([]bool, n)
	}
	clear(buf)
	return buf
}

func sampleWindow(resolution int, from, to float64) (int, int) {
	res := float64(resolution)
	i0 := int(math.Ceil(res * from))
	i1 := int(math.Floor(res * to))
	if i0 < 0 {
		i0 = 0
	}
	return i0, i1
}
