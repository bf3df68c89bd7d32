// Package channel sequences timed items into per-channel values and events.
//
// A Channel holds items sorted by time that never overlap. Sample is a pure
// lookup of the value at any time. Consume drives the channel forward with a
// non-decreasing clock: every call yields one Update per item active at the
// queried time, and each item's completion is reported exactly once. Updates
// are applied by calling Fire, which lets a caller merge the updates of many
// channels in time order before any of them takes effect.
//
// Seeking backward requires Reset first.
package channel
