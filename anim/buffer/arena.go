package buffer

// Arena is a grow-only scratch slice. The zero value is ready to use.
type Arena struct {
	samples []float64
}

// Reserve ensures capacity is at least n. Existing contents are not preserved.
func (a *Arena) Reserve(n int) {
	if n <= cap(a.samples) {
		return
	}
	a.samples = make([]float64, n)
}

// Take returns a window of length n backed by the arena. The window aliases
// the previous one: contents are stale and must be overwritten by the caller.
func (a *Arena) Take(n int) []float64 {
	if n < 0 {
		n = 0
	}
	a.Reserve(n)
	return a.samples[:n]
}
