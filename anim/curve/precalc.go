package curve

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-automaton/anim/bezier"
	"github.com/cwbudde/algo-automaton/anim/core"
	"github.com/cwbudde/algo-automaton/anim/fx"
)

// Precalculate re-renders the sample table from nodes and fx sections.
// Every setter calls it; it is exported for callers that changed something
// the curve cannot observe, such as the contents of its resolver.
func (c *Curve) Precalculate() {
	n := core.TableLength(c.resolution, c.Length())

	c.values = core.EnsureLen(c.values, n)
	c.noInterp = ensureFlags(c.noInterp, n)
	c.statuses = c.statuses[:0]
	c.scratch.Reserve(n)

	c.generate()
	c.applyFxs()

	c.logger.Debug("curve precalculated",
		slog.Int("samples", n),
		slog.Int("sections", len(c.fxs)),
		slog.Int("statuses", len(c.statuses)),
	)
}

// generate is Phase A: the raw eased curve.
func (c *Curve) generate() {
	values := c.values
	last := len(values) - 1
	first := c.nodes[0]
	tail := c.nodes[len(c.nodes)-1]

	if len(c.nodes) == 1 {
		core.Fill(values, first.Value)
		return
	}

	i0, _ := sampleWindow(c.resolution, first.Time, first.Time)
	core.Fill(values[:min(i0, last+1)], first.Value)

	res := float64(c.resolution)
	for k := 0; k+1 < len(c.nodes); k++ {
		n0, n1 := c.nodes[k], c.nodes[k+1]
		from, to := sampleWindow(c.resolution, n0.Time, n1.Time)
		to = min(to, last)
		for i := from; i <= to; i++ {
			values[i] = bezier.Ease(n0, n1, float64(i)/res)
		}
	}

	_, end := sampleWindow(c.resolution, tail.Time, tail.Time)
	if start := max(end+1, 0); start <= last {
		core.Fill(values[start:], tail.Value)
	}
}

// applyFxs is Phase B: every section in declaration order, each committed
// back into the table before the next one runs.
func (c *Curve) applyFxs() {
	h := host{c: c}

	for idx, sec := range c.fxs {
		if sec.Bypass {
			continue
		}

		def, ok := c.lookup(sec.Def)
		if !ok {
			c.report(Status{
				Code:    StatusFxDefinitionNotFound,
				Level:   LevelWarning,
				Section: idx,
				Message: fmt.Sprintf("definition %q does not exist, section ignored", sec.Def),
			})

			continue
		}

		if !(sec.Length > 0) {
			c.report(Status{
				Code:    StatusFxLengthNotPositive,
				Level:   LevelWarning,
				Section: idx,
				Message: fmt.Sprintf("length %g, section ignored", sec.Length),
			})

			continue
		}

		i0, i1 := sampleWindow(c.resolution, sec.Time, math.Min(c.Length(), sec.End()))
		if i1 <= i0 {
			c.report(Status{
				Code:    StatusFxLengthNotPositive,
				Level:   LevelWarning,
				Section: idx,
				Message: fmt.Sprintf("sample window [%d, %d] is empty, section ignored", i0, i1),
			})

			continue
		}

		w := fx.Window{
			I0:         i0,
			I1:         i1,
			T0:         sec.Time,
			Length:     sec.Length,
			Resolution: c.resolution,
		}

		out := c.scratch.Take(w.Len())
		nans := fx.Run(def, h, w, fx.ResolveParams(def.Params(), sec.Params), &c.ctx, out)
		copy(c.values[i0:i1+1], out)

		if nans > 0 {
			c.report(Status{
				Code:    StatusNaNDetected,
				Level:   LevelError,
				Section: idx,
				Message: fmt.Sprintf("%d samples of %q were NaN and replaced by 0", nans, sec.Def),
			})
		}
	}
}

func (c *Curve) lookup(id string) (fx.Definition, bool) {
	if c.resolver == nil {
		return nil, false
	}
	return c.resolver.Lookup(id)
}

func (c *Curve) report(s Status) {
	c.statuses = append(c.statuses, s)
	c.logger.Warn("curve fx section skipped or degraded",
		slog.String("code", s.Code.String()),
		slog.String("level", s.Level.String()),
		slog.Int("section", s.Section),
		slog.String("message", s.Message),
	)
}

// host exposes the curve to fx functions without handing out the live table
// through the exported API.
type host struct {
	c *Curve
}

func (h host) Sample(time float64) float64 { return h.c.Sample(time) }

func (h host) Values() []float64 { return h.c.values }

func (h host) SetShouldNotInterpolate(index int, v bool) {
	if index >= 0 && index < len(h.c.noInterp) {
		h.c.noInterp[index] = v
	}
}

func (h host) ShouldNotInterpolate(index int) bool {
	return index >= 0 && index < len(h.c.noInterp) && h.c.noInterp[index]
}
