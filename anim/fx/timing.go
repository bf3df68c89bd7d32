package fx

import "math"

// Lofi returns the "lofi" definition: sample and hold at rate samples per
// second, either on the absolute timeline or relative to the section start.
// With hard set, each held step is marked as a discontinuity so lookups do
// not blend into the next step.
func Lofi() Definition {
	return Func{
		DisplayName: "Lofi",
		Summary:     "Holds the curve at a fixed rate.",
		Schema: []ParamSpec{
			floatParam("rate", "Rate", 10, 0),
			boolParam("relative", "Relative", false),
			boolParam("hard", "Hard Steps", false),
		},
		Fn: func(ctx *Context) float64 {
			p := ctx.Params
			rate := p.Num("rate")
			if rate == 0 {
				return ctx.Value
			}

			origin := 0.0
			if p.Bool("relative") {
				origin = ctx.T0
			}

			step := math.Floor((ctx.Time - origin) * rate)
			if p.Bool("hard") {
				next := math.Floor((nextTime(ctx) - origin) * rate)
				ctx.SetShouldNotInterpolate(next != step)
			}

			return ctx.Sample(origin + step/rate)
		},
	}
}

// Repeat returns the "repeat" definition: the first interval seconds of the
// section are looped for its whole length.
func Repeat() Definition {
	return Func{
		DisplayName: "Repeat",
		Summary:     "Repeats a section of the curve.",
		Schema: []ParamSpec{
			floatParam("interval", "Interval", 1, 0.001),
		},
		Fn: func(ctx *Context) float64 {
			interval := ctx.Params.Num("interval")
			local := math.Mod(ctx.Elapsed, interval)

			wrap := math.Mod(nextTime(ctx)-ctx.T0, interval) < local
			ctx.SetShouldNotInterpolate(wrap)

			return ctx.Sample(ctx.T0 + local)
		},
	}
}

// nextTime returns the time of the sample after the current one, computed
// from its index so step boundaries land exactly on sample times.
func nextTime(ctx *Context) float64 {
	return float64(ctx.Index+1) / float64(ctx.Resolution)
}
