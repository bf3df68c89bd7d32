package bezier

import "github.com/cwbudde/algo-automaton/anim/core"

const (
	tableSize = 21

	newtonIterations = 4
	newtonMinSlope   = 0.001

	subdivIterations = 10
	subdivPrecision  = 0.000001
)

// ControlPoints holds the four control values of one axis of a cubic segment.
type ControlPoints struct {
	P0, P1, P2, P3 float64
}

func (c ControlPoints) a() float64 { return c.P3 - 3.0*c.P2 + 3.0*c.P1 - c.P0 }
func (c ControlPoints) b() float64 { return 3.0*c.P2 - 6.0*c.P1 + 3.0*c.P0 }
func (c ControlPoints) c() float64 { return 3.0*c.P1 - 3.0*c.P0 }

// Eval evaluates the cubic at parameter t.
func (c ControlPoints) Eval(t float64) float64 {
	return ((c.a()*t+c.b())*t+c.c())*t + c.P0
}

// Slope returns the derivative of the cubic at parameter t.
func (c ControlPoints) Slope(t float64) float64 {
	return (3.0*c.a()*t+2.0*c.b())*t + c.c()
}

// Solve returns y at time x for the segment described by cpsx (time axis) and
// cpsy (value axis). Times outside [cpsx.P0, cpsx.P3] return the nearest
// endpoint value.
func Solve(cpsx, cpsy ControlPoints, x float64) float64 {
	if x <= cpsx.P0 {
		return cpsy.P0
	}
	if cpsx.P3 <= x {
		return cpsy.P3
	}

	cpsx.P1 = core.Clamp(cpsx.P1, cpsx.P0, cpsx.P3)
	cpsx.P2 = core.Clamp(cpsx.P2, cpsx.P0, cpsx.P3)

	var table [tableSize]float64
	for i := range table {
		table[i] = cpsx.Eval(float64(i) / (tableSize - 1))
	}

	sample := 0
	for i := 1; i < tableSize; i++ {
		sample = i - 1
		if x < table[i] {
			break
		}
	}

	dist := (x - table[sample]) / (table[sample+1] - table[sample])
	t := (float64(sample) + dist) / (tableSize - 1)

	d := cpsx.Slope(t) / (cpsx.P3 - cpsx.P0)
	if newtonMinSlope <= d {
		t = newton(x, t, cpsx)
	} else if d != 0 {
		t = subdiv(x, float64(sample)/(tableSize-1), float64(sample+1)/(tableSize-1), cpsx)
	}

	return cpsy.Eval(t)
}

func newton(x, t float64, cps ControlPoints) float64 {
	for range newtonIterations {
		d := cps.Slope(t)
		if d == 0 {
			return t
		}
		t -= (cps.Eval(t) - x) / d
	}
	return t
}

// subdiv bisects [a, b] for the parameter whose x is closest to target.
func subdiv(x, a, b float64, cps ControlPoints) float64 {
	t := 0.0
	for range subdivIterations {
		t = a + (b-a)/2.0
		diff := cps.Eval(t) - x
		if diff > 0 {
			b = t
		} else {
			a = t
		}
		if diff > -subdivPrecision && diff < subdivPrecision {
			break
		}
	}
	return t
}
