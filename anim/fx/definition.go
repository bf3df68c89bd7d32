package fx

// ParamType is the declared type of a definition parameter.
type ParamType int

const (
	ParamFloat ParamType = iota
	ParamInt
	ParamBool
)

func (t ParamType) String() string {
	switch t {
	case ParamFloat:
		return "float"
	case ParamInt:
		return "int"
	case ParamBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// ParamSpec declares one parameter of a definition. Min and Max are optional
// bounds; values outside them are clamped when params are resolved.
type ParamSpec struct {
	Key     string
	Name    string
	Type    ParamType
	Default float64
	Min     *float64
	Max     *float64
}

// Definition is a procedural fx function plus its parameter schema.
//
// Evaluate is called once per sample of a section window and must not mutate
// the curve it runs on; it may only read through ctx.Sample and ctx.Values.
// Per-section scratch data goes into ctx.State.
type Definition interface {
	Name() string
	Description() string
	Params() []ParamSpec
	Evaluate(ctx *Context) float64
}

// Func adapts a plain function to Definition.
type Func struct {
	DisplayName string
	Summary     string
	Schema      []ParamSpec
	Fn          func(ctx *Context) float64
}

func (f Func) Name() string        { return f.DisplayName }
func (f Func) Description() string { return f.Summary }
func (f Func) Params() []ParamSpec { return f.Schema }

// Evaluate calls f.Fn. A nil Fn passes the input value through.
func (f Func) Evaluate(ctx *Context) float64 {
	if f.Fn == nil {
		return ctx.Value
	}
	return f.Fn(ctx)
}

func bound(v float64) *float64 { return &v }

func floatParam(key, name string, def float64, bounds ...float64) ParamSpec {
	spec := ParamSpec{Key: key, Name: name, Type: ParamFloat, Default: def}
	applyBounds(&spec, bounds)
	return spec
}

func intParam(key, name string, def int, bounds ...float64) ParamSpec {
	spec := ParamSpec{Key: key, Name: name, Type: ParamInt, Default: float64(def)}
	applyBounds(&spec, bounds)
	return spec
}

func boolParam(key, name string, def bool) ParamSpec {
	spec := ParamSpec{Key: key, Name: name, Type: ParamBool}
	if def {
		spec.Default = 1
	}
	return spec
}

func applyBounds(spec *ParamSpec, bounds []float64) {
	if len(bounds) > 0 {
		spec.Min = bound(bounds[0])
	}
	if len(bounds) > 1 {
		spec.Max = bound(bounds[1])
	}
}
