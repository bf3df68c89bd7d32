// Package bezier solves one-dimensional cubic Bezier easing segments.
//
// A segment is parameterized independently along the time axis (x) and the
// value axis (y). Solve inverts x(t) for a query time and evaluates y at the
// resulting parameter. The x control points are clamped into the endpoint
// range so that x(t) is monotonic and therefore invertible.
//
// The solver keeps no state between calls: identical inputs always produce
// bit-identical outputs, which makes curve precalculation reproducible.
package bezier
