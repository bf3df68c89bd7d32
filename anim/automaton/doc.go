// Package automaton ties curves, channels and fx definitions into one
// playable timeline.
//
// An Automaton owns every curve and channel of a document, the fx registry
// the curves resolve their sections against, and the global clock. Update
// advances the clock, collects the pending updates of all channels, orders
// them by time (ties keep channel insertion order) and fires them.
//
// Documents are loaded from and saved to JSON with Load, FromData and Data.
package automaton
