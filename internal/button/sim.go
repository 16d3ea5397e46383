package button

import "time"

// Sim is a manually driven Button for tests and virtual input sources.
// Callers set its condition flags and edge time directly; Update is a
// no-op because there is nothing to sample.
type Sim struct {
	id    ID
	state State
	edge  time.Time
}

// NewSim creates a simulated button in the Idle state.
func NewSim(id ID) *Sim {
	return &Sim{id: id, state: Idle}
}

// ID returns the button's stable identifier.
func (s *Sim) ID() ID {
	return s.id
}

// State returns the current condition flags.
func (s *Sim) State() State {
	return s.state
}

// PushTime returns the last edge time set by Set, Press, or Release.
func (s *Sim) PushTime() time.Time {
	return s.edge
}

// Update is a no-op; Sim has no underlying contact to sample.
func (s *Sim) Update() {}

// Set replaces the condition flags and the edge time.
func (s *Sim) Set(state State, at time.Time) {
	s.state = state
	s.edge = at
}

// SetState replaces the condition flags without touching the edge time.
func (s *Sim) SetState(state State) {
	s.state = state
}

// Press marks a press edge at the given time.
func (s *Sim) Press(at time.Time) {
	s.Set(Push, at)
}

// Release marks a release edge at the given time.
func (s *Sim) Release(at time.Time) {
	s.Set(Release, at)
}
