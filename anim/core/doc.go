// Package core holds the small numeric helpers and the shared construction
// options used by the curve, channel and automaton packages.
package core
