// Package input resolves simultaneously held keyboard signals into a single
// per-tick steering and speed command.
//
// A [Mapper] applies fixed priority rules: opposing directions cancel,
// steering sign mirrors in reverse, and speed set-point adjustments require a
// directional input to be held.
package input
