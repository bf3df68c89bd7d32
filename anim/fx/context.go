package fx

import "math"

// Host is the curve a section runs on, as seen from inside an fx function.
type Host interface {
	// Sample returns the committed curve value at time.
	Sample(time float64) float64
	// Values returns the live sample table. It must be treated as read-only.
	Values() []float64
	// SetShouldNotInterpolate marks the sample at index as a discontinuity.
	SetShouldNotInterpolate(index int, v bool)
	// ShouldNotInterpolate reports the discontinuity mark of the sample at index.
	ShouldNotInterpolate(index int) bool
}

// Window is the inclusive sample-index range a section covers, plus the
// section's own time extent.
type Window struct {
	I0, I1     int
	T0, Length float64
	Resolution int
}

// Len returns the number of samples in the window.
func (w Window) Len() int {
	if w.I1 < w.I0 {
		return 0
	}
	return w.I1 - w.I0 + 1
}

// Context is what a Definition sees for one sample.
type Context struct {
	// Index is the absolute sample index; I0 and I1 bound the window.
	Index, I0, I1 int
	// Time is the absolute time of the sample; T0 and T1 bound the section.
	Time, T0, T1 float64
	// DeltaTime is the time between two samples.
	DeltaTime float64
	// Value is the sample before this section was applied.
	Value float64
	// Elapsed is Time - T0; Progress is Elapsed / Length.
	Elapsed, Progress float64
	Length            float64
	Resolution        int
	Params            Params
	// Init is true only for the first sample of the window.
	Init bool
	// State persists across the samples of one section invocation. It is
	// nil when the invocation starts.
	State any

	host Host
}

// Sample returns the curve value at time as committed by earlier sections.
func (c *Context) Sample(time float64) float64 {
	return c.host.Sample(time)
}

// Values returns the live table, unchanged by this section until it ends.
func (c *Context) Values() []float64 {
	return c.host.Values()
}

// SetShouldNotInterpolate marks the current sample as a discontinuity, so
// lookups between it and the next sample continue its incoming slope instead
// of blending toward the next value.
func (c *Context) SetShouldNotInterpolate(v bool) {
	c.host.SetShouldNotInterpolate(c.Index, v)
}

// ShouldNotInterpolate reports the discontinuity mark of the current sample.
func (c *Context) ShouldNotInterpolate() bool {
	return c.host.ShouldNotInterpolate(c.Index)
}

// Run evaluates def for every sample of w and writes the results into out,
// which must hold at least w.Len() values. NaN results are replaced by 0; the
// number of replaced samples is returned. ctx is reused when non-nil.
func Run(def Definition, host Host, w Window, params Params, ctx *Context, out []float64) int {
	if ctx == nil {
		ctx = &Context{}
	}

	res := float64(w.Resolution)
	*ctx = Context{
		I0:         w.I0,
		I1:         w.I1,
		T0:         w.T0,
		T1:         w.T0 + w.Length,
		DeltaTime:  1.0 / res,
		Length:     w.Length,
		Resolution: w.Resolution,
		Params:     params,
		Init:       true,
		host:       host,
	}

	values := host.Values()
	nans := 0

	for i := range w.Len() {
		ctx.Index = w.I0 + i
		ctx.Time = float64(ctx.Index) / res
		ctx.Value = values[ctx.Index]
		ctx.Elapsed = ctx.Time - w.T0
		ctx.Progress = ctx.Elapsed / w.Length

		v := def.Evaluate(ctx)
		if math.IsNaN(v) {
			v = 0
			nans++
		}

		out[i] = v
		ctx.Init = false
	}

	ctx.host = nil
	ctx.State = nil

	return nans
}
