// Package keybind detects multi-button sequences from a fixed set of
// polled inputs.
//
// A Keybind owns a fixed-capacity table of event definitions. Each
// definition is an ordered button sequence (a primary button plus
// zero or more modifiers) and the condition flags the primary must
// show for the event to fire. Once per polling cycle, Update refreshes
// every button and runs a two-phase match:
//
//   - Candidate selection: for each primary button, pick the best
//     definition. Longer sequences beat shorter ones, and equal
//     lengths are broken in favor of the definition whose required
//     primary state matches right now. Modifiers must be actively
//     engaged and must have been pressed no later than their neighbor
//     toward the primary.
//   - Commit: a winning candidate fires only if its required primary
//     state still matches; its modifiers are then marked consumed.
//
// A consumed modifier cannot fire its own primary binding while it
// stays pressed; it becomes eligible again once it returns to Idle or
// None. This prevents the modifier half of a chord from also reading
// as an independent press.
//
// All capacities (buttons, events, sequence length) are fixed at
// construction; Update allocates nothing and completes in time bounded
// by those capacities. The caller serializes all calls.
package keybind
