package fx

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// lowpassState holds the filtered window computed on the first sample. When
// filtering failed err is set, out is nil and the section passes its input
// through.
type lowpassState struct {
	out []float64
	err error
}

// Lowpass returns the "lowpass" definition. On the first sample the whole
// pre-section window is detrended, transformed with an FFT, stripped of every
// bin above cutoff (Hz, in timeline seconds) and transformed back. The linear
// trend is added again so the section endpoints stay in place.
func Lowpass() Definition {
	return Func{
		DisplayName: "Low-pass",
		Summary:     "Removes detail faster than the cutoff frequency.",
		Schema: []ParamSpec{
			floatParam("cutoff", "Cutoff", 4, 0),
		},
		Fn: func(ctx *Context) float64 {
			s, _ := ctx.State.(*lowpassState)
			if ctx.Init || s == nil {
				out, err := lowpassWindow(ctx.Values()[ctx.I0:ctx.I1+1], ctx.Resolution, ctx.Params.Num("cutoff"))
				s = &lowpassState{out: out, err: err}
				ctx.State = s
			}

			i := ctx.Index - ctx.I0
			if s.err != nil || i < 0 || i >= len(s.out) {
				return ctx.Value
			}

			return s.out[i]
		},
	}
}

func lowpassWindow(window []float64, resolution int, cutoff float64) ([]float64, error) {
	n := len(window)
	if n < 2 {
		out := make([]float64, n)
		copy(out, window)
		return out, nil
	}

	size := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fx: lowpass: failed to create FFT plan: %w", err)
	}

	first, last := window[0], window[n-1]
	slope := (last - first) / float64(n-1)

	spec := make([]complex128, size)
	for i, v := range window {
		spec[i] = complex(v-(first+slope*float64(i)), 0)
	}

	err = plan.Forward(spec, spec)
	if err != nil {
		return nil, fmt.Errorf("fx: lowpass: forward FFT failed: %w", err)
	}

	binHz := float64(resolution) / float64(size)
	for k := 1; k < size; k++ {
		bin := k
		if bin > size/2 {
			bin = size - k
		}
		if float64(bin)*binHz > cutoff {
			spec[k] = 0
		}
	}

	err = plan.Inverse(spec, spec)
	if err != nil {
		return nil, fmt.Errorf("fx: lowpass: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(spec[i]) + first + slope*float64(i)
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
