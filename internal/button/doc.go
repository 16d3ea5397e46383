// Package button provides the input side of the keybind system.
//
// A Button is one discrete digital input. Each polling cycle it exposes
// a State bitmask of condition flags (Idle, Push, Hold, Delay, Release,
// Rapid, or None when disabled) and the time of its last press/release
// edge. Two implementations are provided:
//
//   - Debounced: a software push-button that samples a raw contact
//     level through a Sampler, debounces it, and derives flags and
//     edge times.
//   - Sim: a manually driven button for tests and virtual sources.
//
// State flags are combinable: a held button past its repeat delay
// reports Hold|Delay, a quick re-press reports Push|Rapid. ParseState
// converts configuration text like "push|rapid" into a State.
package button
