package fx

import (
	"math"
	"math/rand/v2"
)

// noiseState holds the gradient table of one noise section. The generator is
// seeded per invocation so every curve stays reproducible on its own.
type noiseState struct {
	grads []float64
}

func newNoiseState(seed uint64, reso int) *noiseState {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := &noiseState{grads: make([]float64, reso)}
	for i := range s.grads {
		s.grads[i] = rng.Float64()*2 - 1
	}

	return s
}

// at evaluates looping 1D gradient noise at x. The result lies in about [-0.5, 0.5].
func (s *noiseState) at(x float64) float64 {
	n := len(s.grads)
	xi := math.Floor(x)
	xf := x - xi

	i0 := int(xi) % n
	if i0 < 0 {
		i0 += n
	}
	i1 := (i0 + 1) % n

	v0 := s.grads[i0] * xf
	v1 := s.grads[i1] * (xf - 1)

	u := xf * xf * xf * (xf*(xf*6-15) + 10)

	return v0 + (v1-v0)*u
}

// Noise returns the "noise" definition: octaves of gradient noise added to
// the curve, indexed by time since the section start.
func Noise() Definition {
	return Func{
		DisplayName: "Fractal Noise",
		Summary:     "Adds fractal noise to the curve.",
		Schema: []ParamSpec{
			intParam("recursion", "Recursion", 4, 1, 99),
			floatParam("freq", "Frequency", 1, 0),
			intParam("reso", "Resolution", 8, 1, 1024),
			intParam("seed", "Seed", 1, 0),
			floatParam("amp", "Amp", 0.2),
		},
		Fn: func(ctx *Context) float64 {
			p := ctx.Params
			s, _ := ctx.State.(*noiseState)
			if ctx.Init || s == nil {
				s = newNoiseState(uint64(p.Int("seed")), p.Int("reso"))
				ctx.State = s
			}

			x := ctx.Elapsed * p.Num("freq")
			sum := 0.0
			scale := 1.0
			for range p.Int("recursion") {
				sum += s.at(x*scale) / scale
				scale *= 2
			}

			return ctx.Value + p.Num("amp")*sum
		},
	}
}
