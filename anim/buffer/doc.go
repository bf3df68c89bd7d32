// Package buffer provides a reusable float64 scratch arena. The curve fx
// pipeline writes each section's output into an arena window before
// committing it, so repeated precalculation does not allocate once the arena
// has grown to the largest window seen.
package buffer
