package fx

import "math"

// tableHost is a minimal Host over a plain sample table.
type tableHost struct {
	values     []float64
	noInterp   []bool
	resolution int
}

func newTableHost(resolution int, values []float64) *tableHost {
	return &tableHost{
		values:     values,
		noInterp:   make([]bool, len(values)),
		resolution: resolution,
	}
}

func (h *tableHost) Sample(time float64) float64 {
	last := len(h.values) - 1
	idx := time * float64(h.resolution)
	if idx <= 0 {
		return h.values[0]
	}
	if idx >= float64(last) {
		return h.values[last]
	}
	i := int(math.Floor(idx))
	frac := idx - float64(i)
	return h.values[i] + (h.values[i+1]-h.values[i])*frac
}

func (h *tableHost) Values() []float64 { return h.values }

func (h *tableHost) SetShouldNotInterpolate(index int, v bool) { h.noInterp[index] = v }

func (h *tableHost) ShouldNotInterpolate(index int) bool { return h.noInterp[index] }

// ramp returns n samples rising linearly from 0 by step.
func ramp(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// runWhole runs def over the full table of h with the given raw params.
func runWhole(def Definition, h *tableHost, raw map[string]any) ([]float64, int) {
	n := len(h.values)
	w := Window{
		I0:         0,
		I1:         n - 1,
		T0:         0,
		Length:     float64(n-1) / float64(h.resolution),
		Resolution: h.resolution,
	}
	out := make([]float64, n)
	nans := Run(def, h, w, ResolveParams(def.Params(), raw), nil, out)
	return out, nans
}
