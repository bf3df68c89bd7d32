// Package fx defines the procedural post-processing capability applied over
// windows of a curve's sample table.
//
// A [Definition] is a pure function of its [Context] plus a declared parameter
// schema. Definitions are looked up by id through a [Resolver], normally a
// [Registry]. [Run] drives one definition over one section window.
//
// Built-in definitions (see [DefaultRegistry]):
//   - add: constant offset.
//   - sine: additive sine oscillation.
//   - pow: signed power curve around a bias.
//   - clamp: hard or smooth clamp.
//   - exp: exponential smoothing toward the curve.
//   - cds: critically damped spring following the curve.
//   - gravity: accelerating follower that bounces on overshoot.
//   - lofi: sample and hold at a fixed rate.
//   - repeat: loops the first interval of the section.
//   - noise: fractal 1D gradient noise, seeded per section.
//   - lowpass: FFT brick-wall low-pass over the section window.
package fx
