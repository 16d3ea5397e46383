package keybind

import (
	"fmt"

	"github.com/dshills/pollbind/internal/button"
)

// definition is one keybind: an ordered list of button slot indices
// with the primary at index 0 and modifiers trailing, nearest first.
// A zero length marks the slot unassigned.
type definition struct {
	seq     []int
	n       int
	primary button.State
}

// Keybind detects multi-button sequences from a fixed set of buttons,
// once per polling cycle. All capacities are fixed at construction and
// all storage is preallocated; Update performs no allocation.
//
// Keybind is not safe for concurrent use. The caller invokes Update
// from a single polling loop and reads results between cycles.
type Keybind struct {
	buttons []button.Button
	defs    []definition
	seqMax  int

	// occurred is recomputed in full each cycle.
	occurred []bool

	// used persists across cycles: used[i] means button i is currently
	// committed as a modifier of a fired event and may not act as a
	// primary until it returns to Idle or None.
	used []bool

	cands []candidate

	// scratch holds resolved slots during Assign so a failed lookup
	// never leaves a partial write behind.
	scratch []int
}

// New creates a Keybind managing the given buttons. The slice order
// defines slot indices for the lifetime of the instance. eventCount is
// the number of assignable events; sequenceMax is the longest allowed
// sequence per binding.
func New(buttons []button.Button, eventCount, sequenceMax int) (*Keybind, error) {
	if len(buttons) == 0 {
		return nil, ErrNoButtons
	}
	if eventCount < 1 {
		return nil, fmt.Errorf("event count %d: %w", eventCount, ErrBadCapacity)
	}
	if sequenceMax < 1 {
		return nil, fmt.Errorf("sequence max %d: %w", sequenceMax, ErrBadCapacity)
	}

	kb := &Keybind{
		buttons:  buttons,
		defs:     make([]definition, eventCount),
		seqMax:   sequenceMax,
		occurred: make([]bool, eventCount),
		used:     make([]bool, len(buttons)),
		cands:    make([]candidate, len(buttons)),
		scratch:  make([]int, sequenceMax),
	}
	for i := range kb.defs {
		kb.defs[i].seq = make([]int, sequenceMax)
	}
	return kb, nil
}

// Assign binds an event to a button sequence. ids lists buttons in
// press order: earliest-required first, primary last. primaryState is
// the condition the primary button must intersect for the event to
// fire.
//
// Assign resolves every ID before writing anything, so a failed call
// leaves the previous definition for the event intact. Reassigning an
// event overwrites its definition.
func (kb *Keybind) Assign(event int, ids []button.ID, primaryState button.State) error {
	if event < 0 || event >= len(kb.defs) {
		return fmt.Errorf("assign event %d: %w", event, ErrEventRange)
	}
	if len(ids) == 0 || len(ids) > kb.seqMax {
		return fmt.Errorf("assign event %d: %d buttons: %w", event, len(ids), ErrSequenceLength)
	}

	// Normalize to primary-first: the last supplied ID lands at slot 0.
	for i, id := range ids {
		s, ok := kb.slot(id)
		if !ok {
			return fmt.Errorf("assign event %d: button %d: %w", event, id, ErrUnknownButton)
		}
		kb.scratch[len(ids)-1-i] = s
	}

	d := &kb.defs[event]
	copy(d.seq, kb.scratch[:len(ids)])
	d.n = len(ids)
	d.primary = primaryState
	return nil
}

// slot maps a button ID to its slot index.
func (kb *Keybind) slot(id button.ID) (int, bool) {
	for i, b := range kb.buttons {
		if b.ID() == id {
			return i, true
		}
	}
	return 0, false
}

// Clear unassigns every event and resets all outcomes and consumption
// flags. The managed buttons are untouched.
func (kb *Keybind) Clear() {
	for i := range kb.defs {
		d := &kb.defs[i]
		for j := range d.seq {
			d.seq[j] = 0
		}
		d.n = 0
		d.primary = button.None
	}
	for i := range kb.occurred {
		kb.occurred[i] = false
	}
	for i := range kb.used {
		kb.used[i] = false
	}
}

// Update runs one polling cycle: refreshes every button, releases
// consumption flags for buttons that returned to Idle or None, resets
// the per-cycle outcomes, and runs the match engine. Results are
// stable until the next Update.
func (kb *Keybind) Update() {
	for i := range kb.occurred {
		kb.occurred[i] = false
	}
	for i, b := range kb.buttons {
		b.Update()
		st := b.State()
		if st == button.None || st.Has(button.Idle) {
			kb.used[i] = false
		}
	}
	kb.search()
}

// IsEvent reports whether the event fired in the most recent Update.
// An out-of-range index reads as false, not an error.
func (kb *Keybind) IsEvent(event int) bool {
	if event < 0 || event >= len(kb.occurred) {
		return false
	}
	return kb.occurred[event]
}

// IsAnyEvent reports whether any event fired in the most recent Update.
func (kb *Keybind) IsAnyEvent() bool {
	for _, fired := range kb.occurred {
		if fired {
			return true
		}
	}
	return false
}

// Button returns the button at the given slot index, or nil if the
// index is out of range. It bypasses matching logic, e.g. for bulk
// configuration of the underlying handles.
func (kb *Keybind) Button(slot int) button.Button {
	if slot < 0 || slot >= len(kb.buttons) {
		return nil
	}
	return kb.buttons[slot]
}

// ForEach applies fn to every managed button in slot order.
func (kb *Keybind) ForEach(fn func(button.Button)) {
	for _, b := range kb.buttons {
		fn(b)
	}
}

// ButtonCount returns the number of managed buttons.
func (kb *Keybind) ButtonCount() int {
	return len(kb.buttons)
}

// EventCount returns the number of assignable events.
func (kb *Keybind) EventCount() int {
	return len(kb.defs)
}

// SequenceMax returns the longest allowed sequence per binding.
func (kb *Keybind) SequenceMax() int {
	return kb.seqMax
}
