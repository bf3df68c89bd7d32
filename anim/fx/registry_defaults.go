package fx

// Builtins returns the built-in definitions keyed by id.
func Builtins() map[string]Definition {
	return map[string]Definition{
		"add":     Add(),
		"sine":    Sine(),
		"pow":     Pow(),
		"clamp":   Clamp(),
		"exp":     Exp(),
		"cds":     CDS(),
		"gravity": Gravity(),
		"lofi":    Lofi(),
		"repeat":  Repeat(),
		"noise":   Noise(),
		"lowpass": Lowpass(),
	}
}

// DefaultRegistry returns a Registry pre-populated with all built-in definitions.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for id, def := range Builtins() {
		r.MustRegister(id, def)
	}
	return r
}
