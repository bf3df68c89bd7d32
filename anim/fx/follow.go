package fx

// followState is the integrator state shared by the follower definitions.
type followState struct {
	pos float64
	vel float64
}

// initFollow seeds a follower at the section start. With preserve set, the
// velocity continues the slope of the curve leading into the section.
func initFollow(ctx *Context, preserve bool) *followState {
	s := &followState{pos: ctx.Value}
	if preserve {
		prev := ctx.Sample(ctx.Time - ctx.DeltaTime)
		s.vel = (ctx.Value - prev) / ctx.DeltaTime
	}
	ctx.State = s
	return s
}

// Exp returns the "exp" definition: first-order exponential smoothing.
func Exp() Definition {
	return Func{
		DisplayName: "Exponential Smoothing",
		Summary:     "Smooths the curve with an exponential decay.",
		Schema: []ParamSpec{
			floatParam("factor", "Factor", 10, 0),
		},
		Fn: func(ctx *Context) float64 {
			s, _ := ctx.State.(*followState)
			if ctx.Init || s == nil {
				s = initFollow(ctx, false)
			}

			k := mathExp(-ctx.DeltaTime * ctx.Params.Num("factor"))
			s.pos = s.pos*k + ctx.Value*(1-k)

			return s.pos
		},
	}
}

// CDS returns the "cds" definition: a critically damped spring chasing the curve.
func CDS() Definition {
	return Func{
		DisplayName: "Critically Damped Spring",
		Summary:     "Follows the curve with a damped spring.",
		Schema: []ParamSpec{
			floatParam("factor", "Factor", 100, 0),
			floatParam("ratio", "Damp Ratio", 1),
			boolParam("preserve", "Preserve Velocity", false),
		},
		Fn: func(ctx *Context) float64 {
			p := ctx.Params
			s, _ := ctx.State.(*followState)
			if ctx.Init || s == nil {
				s = initFollow(ctx, p.Bool("preserve"))
			}

			dt := ctx.DeltaTime
			k := p.Num("factor")
			s.vel += (-k*(s.pos-ctx.Value) - 2*mathSqrt(k)*s.vel*p.Num("ratio")) * dt
			s.pos += s.vel * dt

			return s.pos
		},
	}
}

// Gravity returns the "gravity" definition: the output accelerates toward the
// curve and bounces back with restitution e when it overshoots.
func Gravity() Definition {
	return Func{
		DisplayName: "Gravity",
		Summary:     "Falls toward the curve and bounces.",
		Schema: []ParamSpec{
			floatParam("a", "Acceleration", 9.8, 0),
			floatParam("e", "Restitution", 0.5, 0, 1),
			boolParam("preserve", "Preserve Velocity", false),
		},
		Fn: func(ctx *Context) float64 {
			p := ctx.Params
			s, _ := ctx.State.(*followState)
			if ctx.Init || s == nil {
				s = initFollow(ctx, p.Bool("preserve"))
			}

			dt := ctx.DeltaTime
			a := sign(ctx.Value-s.pos) * p.Num("a")
			s.vel += a * dt
			s.pos += s.vel * dt

			if sign(a) != sign(ctx.Value-s.pos) {
				e := p.Num("e")
				s.vel *= -e
				s.pos = ctx.Value + e*(ctx.Value-s.pos)
			}

			return s.pos
		},
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
