package fx

import "math"

// Add returns the "add" definition: value + param value.
func Add() Definition {
	return Func{
		DisplayName: "Add",
		Summary:     "Adds a constant to the curve.",
		Schema: []ParamSpec{
			floatParam("value", "Value", 0),
		},
		Fn: func(ctx *Context) float64 {
			return ctx.Value + ctx.Params.Num("value")
		},
	}
}

// Sine returns the "sine" definition, adding an oscillation whose phase is
// measured from the section start.
func Sine() Definition {
	return Func{
		DisplayName: "Sine",
		Summary:     "Adds a sine wave to the curve.",
		Schema: []ParamSpec{
			floatParam("amp", "Amp", 0.1),
			floatParam("freq", "Frequency", 5),
			floatParam("offset", "Offset", 0, 0, 1),
		},
		Fn: func(ctx *Context) float64 {
			p := ctx.Params
			phase := ctx.Elapsed*p.Num("freq") + p.Num("offset")
			return ctx.Value + p.Num("amp")*math.Sin(2*math.Pi*phase)
		},
	}
}

// Pow returns the "pow" definition. The curve is raised to a power around
// bias, keeping its sign unless positive is set.
func Pow() Definition {
	return Func{
		DisplayName: "Power",
		Summary:     "Raises the curve to a power.",
		Schema: []ParamSpec{
			floatParam("pow", "Power", 2),
			floatParam("bias", "Bias", 0),
			boolParam("positive", "Force positive", false),
		},
		Fn: func(ctx *Context) float64 {
			p := ctx.Params
			v := ctx.Value - p.Num("bias")
			vp := math.Pow(math.Abs(v), p.Num("pow"))
			if !p.Bool("positive") && v < 0 {
				vp = -vp
			}
			return vp + p.Num("bias")
		},
	}
}

// Clamp returns the "clamp" definition. A positive smooth parameter replaces
// the hard corners with polynomial smooth min/max.
func Clamp() Definition {
	return Func{
		DisplayName: "Clamp",
		Summary:     "Constrains the curve to a range.",
		Schema: []ParamSpec{
			floatParam("min", "Min", 0),
			floatParam("max", "Max", 1),
			floatParam("smooth", "Smooth", 0, 0),
		},
		Fn: func(ctx *Context) float64 {
			p := ctx.Params
			lo, hi, k := p.Num("min"), p.Num("max"), p.Num("smooth")
			if k == 0 {
				return math.Min(math.Max(ctx.Value, lo), hi)
			}
			return smax(lo, smin(hi, ctx.Value, k), k)
		},
	}
}

func smin(a, b, k float64) float64 {
	h := math.Max(k-math.Abs(a-b), 0) / k
	return math.Min(a, b) - h*h*h*k/6
}

func smax(a, b, k float64) float64 {
	return -smin(-a, -b, k)
}
