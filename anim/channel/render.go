package channel

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-automaton/anim/core"
)

// Render fills dst with Sample(start + i*step). Runs of samples inside one
// curve item are sampled into an internal scratch block and scaled in one
// pass. step must be positive.
func (c *Channel) Render(dst []float64, start, step float64) {
	for i := 0; i < len(dst); {
		t := start + float64(i)*step

		idx := c.itemAt(t)
		if idx < 0 || !c.insideCurve(idx, t) {
			dst[i] = c.Sample(t)
			i++
			continue
		}

		it := c.items[idx]

		j := i + 1
		for j < len(dst) && c.insideCurve(idx, start+float64(j)*step) {
			j++
		}

		c.scratch = core.EnsureLen(c.scratch, j-i)
		for k := range c.scratch {
			local := start + float64(i+k)*step - it.Time
			c.scratch[k] = it.Curve.Sample(it.curveTime(local))
		}

		run := dst[i:j]
		vecmath.ScaleBlock(run, c.scratch, it.Amp)
		for k := range run {
			run[k] += it.Value
		}

		i = j
	}
}

// insideCurve reports whether t falls inside item idx, end excluded, and the
// item plays a curve.
func (c *Channel) insideCurve(idx int, t float64) bool {
	it := c.items[idx]
	if it.Curve == nil {
		return false
	}

	local := t - it.Time
	return local >= 0 && local < it.Length
}
