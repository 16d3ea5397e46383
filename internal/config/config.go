package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dshills/pollbind/internal/button"
	"github.com/dshills/pollbind/internal/keybind"
)

// Set is a named collection of keybind assignments.
type Set struct {
	// Name labels the set for display purposes.
	Name string `json:"name,omitempty"`

	// Bindings are applied in order; a later binding for the same
	// event overwrites an earlier one.
	Bindings []Binding `json:"bindings"`
}

// Binding describes one keybind assignment.
type Binding struct {
	// Event is the event index the binding fires.
	Event int `json:"event"`

	// Buttons lists button IDs in press order, primary last.
	Buttons []button.ID `json:"buttons"`

	// State is the required primary condition, e.g. "release" or
	// "push|rapid".
	State string `json:"state"`

	// Description provides documentation for the binding.
	Description string `json:"description,omitempty"`
}

// LoadFile loads a binding set from a JSON file.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening binding file: %w", err)
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader loads a binding set from a reader.
func LoadReader(r io.Reader) (*Set, error) {
	var set Set
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("decoding binding set: %w", err)
	}
	return &set, nil
}

// Apply assigns every binding in the set to the keybind instance.
// It stops at the first failing binding; bindings applied before the
// failure remain in effect.
func (s *Set) Apply(kb *keybind.Keybind) error {
	for i, b := range s.Bindings {
		state, err := button.ParseState(b.State)
		if err != nil {
			return fmt.Errorf("binding %d (event %d): %w", i, b.Event, err)
		}
		if err := kb.Assign(b.Event, b.Buttons, state); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
	}
	return nil
}

// SaveFile writes the binding set to a JSON file.
func (s *Set) SaveFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling binding set: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing binding file: %w", err)
	}

	return nil
}
