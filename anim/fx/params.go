package fx

import (
	"math"

	"github.com/cwbudde/algo-automaton/anim/core"
)

// Params holds the resolved numeric parameters of one fx section. Booleans
// are stored as 0 or 1.
type Params struct {
	num map[string]float64
}

// NewParams wraps an already resolved map. Mostly useful in tests.
func NewParams(num map[string]float64) Params {
	return Params{num: num}
}

// Num returns the parameter value, or 0 if it is missing.
func (p Params) Num(key string) float64 {
	return p.num[key]
}

// Int returns the parameter rounded to the nearest integer.
func (p Params) Int(key string) int {
	return int(math.Round(p.num[key]))
}

// Bool reports whether the parameter is non-zero.
func (p Params) Bool(key string) bool {
	return p.num[key] != 0
}

// Map returns a copy of the resolved values.
func (p Params) Map() map[string]float64 {
	out := make(map[string]float64, len(p.num))
	for k, v := range p.num {
		out[k] = v
	}
	return out
}

// ResolveParams builds the parameter set for a section: every declared key
// gets its default unless raw provides a usable value, ints are rounded,
// booleans normalized and bounds applied. Undeclared raw keys are kept as-is.
func ResolveParams(specs []ParamSpec, raw map[string]any) Params {
	given := parseRawParams(raw)
	num := make(map[string]float64, len(specs)+len(given))

	for k, v := range given {
		num[k] = v
	}

	for _, spec := range specs {
		v, ok := given[spec.Key]
		if !ok || !core.IsFinite(v) {
			v = spec.Default
		}

		switch spec.Type {
		case ParamInt:
			v = math.Round(v)
		case ParamBool:
			if v != 0 {
				v = 1
			}
		}

		if spec.Min != nil && v < *spec.Min {
			v = *spec.Min
		}
		if spec.Max != nil && v > *spec.Max {
			v = *spec.Max
		}

		num[spec.Key] = v
	}

	return Params{num: num}
}

func parseRawParams(raw map[string]any) map[string]float64 {
	num := make(map[string]float64, len(raw))

	for k, v := range raw {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case float32:
			num[k] = float64(t)
		case int:
			num[k] = float64(t)
		case int64:
			num[k] = float64(t)
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num
}
