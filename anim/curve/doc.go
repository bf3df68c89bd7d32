// Package curve implements precalculated animation curves.
//
// A Curve is defined by an ordered list of Bezier nodes and a list of fx
// sections. Precalculate renders it into a dense sample table in two phases:
//
//   - Phase A evaluates the eased Bezier segment between every pair of
//     consecutive nodes at each sample time. Samples before the first node
//     and after the last hold the boundary node's value.
//   - Phase B runs each non-bypassed fx section, in declaration order, over
//     its sample window. A section reads the table as committed by earlier
//     sections and writes its own output into a scratch window that is
//     copied back only once the whole window has been computed.
//
// Sample is an O(1) lookup into that table. Problems found during
// precalculation (unknown fx definitions, empty windows, NaN output) never
// stop evaluation; they are recorded as statuses and logged.
package curve
