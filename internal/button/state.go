package button

import (
	"fmt"
	"strings"
)

// State represents the momentary condition of a button as a set of flags.
// Flags are non-exclusive: a pressed button re-pressed quickly reports
// Push|Rapid, and a button held past its repeat delay reports Hold|Delay.
type State uint8

const (
	// None indicates a disabled button with no reportable condition.
	None State = 0

	// Idle indicates the button is settled and unpressed.
	Idle State = 1 << iota

	// Push indicates the press edge was detected this cycle.
	Push

	// Hold indicates the button remains pressed after the push cycle.
	Hold

	// Delay indicates a repeat pulse while held past the repeat delay.
	Delay

	// Release indicates the release edge was detected this cycle.
	Release

	// Rapid indicates a re-press within the rapid window of the last release.
	Rapid
)

// Has returns true if s contains any of the specified flags.
func (s State) Has(flags State) bool {
	return s&flags != 0
}

// Engaged returns true if the button is actively pressed in any form.
// This is the condition a modifier must satisfy inside a keybind sequence.
func (s State) Engaged() bool {
	return s.Has(Push | Hold | Delay)
}

// With returns a new State with the specified flags added.
func (s State) With(flags State) State {
	return s | flags
}

// Without returns a new State with the specified flags removed.
func (s State) Without(flags State) State {
	return s &^ flags
}

// String returns a human-readable representation like "Push+Rapid".
func (s State) String() string {
	if s == None {
		return "None"
	}

	var parts []string
	if s.Has(Idle) {
		parts = append(parts, "Idle")
	}
	if s.Has(Push) {
		parts = append(parts, "Push")
	}
	if s.Has(Hold) {
		parts = append(parts, "Hold")
	}
	if s.Has(Delay) {
		parts = append(parts, "Delay")
	}
	if s.Has(Release) {
		parts = append(parts, "Release")
	}
	if s.Has(Rapid) {
		parts = append(parts, "Rapid")
	}
	return strings.Join(parts, "+")
}

// stateNameMap maps state names (lowercase) to State values.
var stateNameMap = map[string]State{
	"none":    None,
	"idle":    Idle,
	"push":    Push,
	"press":   Push,
	"hold":    Hold,
	"held":    Hold,
	"delay":   Delay,
	"repeat":  Delay,
	"release": Release,
	"rapid":   Rapid,
	"double":  Rapid,
}

// StateFromName returns the State for a given name (case-insensitive).
// Returns None and false if the name is not recognized.
func StateFromName(name string) (State, bool) {
	s, ok := stateNameMap[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// ParseState parses a state expression like "release" or "push|rapid".
// Flags may be separated by "|" or "+". An unknown flag name is an error.
func ParseState(expr string) (State, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return None, fmt.Errorf("empty state expression")
	}

	sep := "|"
	if !strings.Contains(expr, "|") && strings.Contains(expr, "+") {
		sep = "+"
	}

	var result State
	for _, part := range strings.Split(expr, sep) {
		s, ok := StateFromName(part)
		if !ok {
			return None, fmt.Errorf("unknown state flag %q", strings.TrimSpace(part))
		}
		result = result.With(s)
	}
	return result, nil
}
