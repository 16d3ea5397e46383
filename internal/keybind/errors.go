package keybind

import "errors"

// Sentinel errors for construction and assignment.
var (
	// ErrNoButtons is returned when New is given an empty button set.
	ErrNoButtons = errors.New("no buttons supplied")

	// ErrBadCapacity is returned when New is given a non-positive
	// event count or sequence maximum.
	ErrBadCapacity = errors.New("invalid capacity")

	// ErrEventRange is returned when an event index is outside the
	// capacity fixed at construction.
	ErrEventRange = errors.New("event index out of range")

	// ErrSequenceLength is returned when an assigned sequence is empty
	// or longer than the per-binding maximum.
	ErrSequenceLength = errors.New("sequence length out of range")

	// ErrUnknownButton is returned when an assigned button ID matches
	// no managed button.
	ErrUnknownButton = errors.New("button id not found")
)
