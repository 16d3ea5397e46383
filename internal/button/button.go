package button

import "time"

// ID identifies a button by a stable, externally meaningful number,
// typically a hardware pin or scan code. It is distinct from the slot
// index a keybind engine assigns to the button at construction.
type ID uint8

// Button is the narrow surface the keybind engine consumes.
// Implementations own debouncing and timing; the engine only reads the
// current condition flags and the time of the last press/release edge.
type Button interface {
	// ID returns the stable identifier used for binding lookup.
	ID() ID

	// State returns the current condition flags.
	State() State

	// PushTime returns the time of the most recent press or release edge.
	// It is monotonically non-decreasing across Update calls.
	PushTime() time.Time

	// Update advances the button's internal debouncing and timing state.
	// It is invoked once per polling cycle before matching.
	Update()
}
