package keybind

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/pollbind/internal/button"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestKeybind builds a Keybind over n simulated buttons with IDs
// 10, 11, 12, ... so that IDs and slot indices never coincide.
func newTestKeybind(t *testing.T, n, events, seqMax int) (*Keybind, []*button.Sim) {
	t.Helper()

	sims := make([]*button.Sim, n)
	buttons := make([]button.Button, n)
	for i := range sims {
		sims[i] = button.NewSim(button.ID(10 + i))
		buttons[i] = sims[i]
	}

	kb, err := New(buttons, events, seqMax)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return kb, sims
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, 4, 2); !errors.Is(err, ErrNoButtons) {
		t.Errorf("New(nil buttons) error = %v, want ErrNoButtons", err)
	}

	buttons := []button.Button{button.NewSim(1)}
	if _, err := New(buttons, 0, 2); !errors.Is(err, ErrBadCapacity) {
		t.Errorf("New(eventCount=0) error = %v, want ErrBadCapacity", err)
	}
	if _, err := New(buttons, 4, 0); !errors.Is(err, ErrBadCapacity) {
		t.Errorf("New(sequenceMax=0) error = %v, want ErrBadCapacity", err)
	}
}

func TestAssignErrors(t *testing.T) {
	kb, _ := newTestKeybind(t, 3, 4, 2)

	tests := []struct {
		name  string
		event int
		ids   []button.ID
		want  error
	}{
		{"negative event", -1, []button.ID{10}, ErrEventRange},
		{"event at capacity", 4, []button.ID{10}, ErrEventRange},
		{"empty sequence", 0, nil, ErrSequenceLength},
		{"oversized sequence", 0, []button.ID{10, 11, 12}, ErrSequenceLength},
		{"unknown id", 0, []button.ID{99}, ErrUnknownButton},
		{"unknown id among known", 0, []button.ID{10, 99}, ErrUnknownButton},
	}

	for _, tt := range tests {
		if err := kb.Assign(tt.event, tt.ids, button.Release); !errors.Is(err, tt.want) {
			t.Errorf("%s: Assign() error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestAssignFailureLeavesTableUntouched(t *testing.T) {
	kb, sims := newTestKeybind(t, 2, 2, 2)

	if err := kb.Assign(0, []button.ID{10}, button.Release); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	// A failed reassign must not clobber the existing definition,
	// even when the leading IDs resolve.
	if err := kb.Assign(0, []button.ID{11, 99}, button.Hold); !errors.Is(err, ErrUnknownButton) {
		t.Fatalf("Assign() error = %v, want ErrUnknownButton", err)
	}

	sims[0].Set(button.Release, t0)
	kb.Update()
	if !kb.IsEvent(0) {
		t.Error("original binding should survive a failed reassign")
	}
}

func TestNoFireBeforeUpdate(t *testing.T) {
	kb, sims := newTestKeybind(t, 1, 2, 1)

	sims[0].Set(button.Release, t0)
	if err := kb.Assign(0, []button.ID{10}, button.Release); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if kb.IsEvent(0) || kb.IsAnyEvent() {
		t.Error("no event may read true before the first Update")
	}

	kb.Update()
	if !kb.IsEvent(0) {
		t.Error("event should fire on the first satisfying Update")
	}
}

func TestSingleButtonBinding(t *testing.T) {
	kb, sims := newTestKeybind(t, 1, 1, 1)
	if err := kb.Assign(0, []button.ID{10}, button.Release); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	sims[0].Set(button.Release, t0)
	kb.Update()
	if !kb.IsEvent(0) {
		t.Error("Release state should fire a release binding")
	}
	if !kb.IsAnyEvent() {
		t.Error("IsAnyEvent() should be true when an event fired")
	}

	sims[0].Set(button.Hold, t0)
	kb.Update()
	if kb.IsEvent(0) {
		t.Error("Hold state should not fire a release binding")
	}
	if kb.IsAnyEvent() {
		t.Error("IsAnyEvent() should be false when nothing fired")
	}
}

func TestLongerSequenceWins(t *testing.T) {
	kb, sims := newTestKeybind(t, 2, 2, 2)
	a, b := sims[0], sims[1]

	// Event 0: A alone on release. Event 1: B then A, fires on hold.
	if err := kb.Assign(0, []button.ID{10}, button.Release); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if err := kb.Assign(1, []button.ID{11, 10}, button.Hold); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	b.Set(button.Hold, t0)
	a.Set(button.Hold, t0.Add(50*time.Millisecond))
	kb.Update()
	if kb.IsEvent(0) {
		t.Error("shorter binding must lose to the chord")
	}
	if !kb.IsEvent(1) {
		t.Error("chord should fire when both buttons are engaged in order")
	}

	// A alone: only the single binding fires.
	b.Set(button.Idle, t0)
	a.Set(button.Release, t0.Add(100*time.Millisecond))
	kb.Update()
	if !kb.IsEvent(0) {
		t.Error("single binding should fire when the modifier is idle")
	}
	if kb.IsEvent(1) {
		t.Error("chord must not fire without its modifier")
	}
}

func TestEqualLengthTieBreakOnState(t *testing.T) {
	// Two single-button bindings on the same primary with disjoint
	// required states; whichever matches the current flags fires,
	// regardless of definition order.
	tests := []struct {
		name    string
		current button.State
		fired   int
		quiet   int
	}{
		{"second matches", button.Hold, 1, 0},
		{"first matches", button.Release, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb, sims := newTestKeybind(t, 1, 2, 1)
			if err := kb.Assign(0, []button.ID{10}, button.Release); err != nil {
				t.Fatalf("Assign() error = %v", err)
			}
			if err := kb.Assign(1, []button.ID{10}, button.Hold); err != nil {
				t.Fatalf("Assign() error = %v", err)
			}

			sims[0].Set(tt.current, t0)
			kb.Update()
			if !kb.IsEvent(tt.fired) {
				t.Errorf("event %d should fire for state %v", tt.fired, tt.current)
			}
			if kb.IsEvent(tt.quiet) {
				t.Errorf("event %d must not fire for state %v", tt.quiet, tt.current)
			}
		})
	}
}

func TestModifierTemporalOrdering(t *testing.T) {
	kb, sims := newTestKeybind(t, 2, 1, 2)
	a, b := sims[0], sims[1]

	if err := kb.Assign(0, []button.ID{11, 10}, button.Hold); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	// Modifier pressed after the primary: declared order violated.
	a.Set(button.Hold, t0)
	b.Set(button.Hold, t0.Add(time.Millisecond))
	kb.Update()
	if kb.IsEvent(0) {
		t.Error("chord must not fire when the modifier edge is newer than the primary's")
	}

	// Equal edge times are allowed.
	a.Set(button.Hold, t0)
	b.Set(button.Hold, t0)
	kb.Update()
	if !kb.IsEvent(0) {
		t.Error("chord should fire when edges are simultaneous")
	}
}

func TestModifierMustBeEngaged(t *testing.T) {
	tests := []struct {
		name  string
		state button.State
		fire  bool
	}{
		{"push", button.Push, true},
		{"hold", button.Hold, true},
		{"delay", button.Hold | button.Delay, true},
		{"release", button.Release, false},
		{"idle", button.Idle, false},
		{"none", button.None, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb, sims := newTestKeybind(t, 2, 1, 2)
			if err := kb.Assign(0, []button.ID{11, 10}, button.Hold); err != nil {
				t.Fatalf("Assign() error = %v", err)
			}

			sims[1].Set(tt.state, t0)
			sims[0].Set(button.Hold, t0.Add(time.Millisecond))
			kb.Update()
			if got := kb.IsEvent(0); got != tt.fire {
				t.Errorf("modifier state %v: fired = %v, want %v", tt.state, got, tt.fire)
			}
		})
	}
}

func TestConsumedModifierCannotActAsPrimary(t *testing.T) {
	kb, sims := newTestKeybind(t, 2, 2, 2)
	a, b := sims[0], sims[1]

	// Event 0: chord with B as modifier. Event 1: B alone.
	if err := kb.Assign(0, []button.ID{11, 10}, button.Hold); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if err := kb.Assign(1, []button.ID{11}, button.Hold); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	b.Set(button.Hold, t0)
	a.Set(button.Hold, t0.Add(time.Millisecond))
	kb.Update()
	if !kb.IsEvent(0) {
		t.Fatal("chord should fire")
	}

	// Next cycle: the chord's primary released, B still held. B is
	// spoken for and must not fire its own binding.
	a.Set(button.Idle, t0.Add(2*time.Millisecond))
	kb.Update()
	if kb.IsEvent(1) {
		t.Error("a consumed modifier must not fire as a primary while still held")
	}

	// B returns to idle, then is pressed again: eligible once more.
	b.Set(button.Idle, t0.Add(3*time.Millisecond))
	kb.Update()
	b.Set(button.Hold, t0.Add(4*time.Millisecond))
	kb.Update()
	if !kb.IsEvent(1) {
		t.Error("modifier should be eligible again after returning to idle")
	}
}

func TestConsumptionClearsOnNone(t *testing.T) {
	kb, sims := newTestKeybind(t, 2, 2, 2)
	a, b := sims[0], sims[1]

	if err := kb.Assign(0, []button.ID{11, 10}, button.Hold); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if err := kb.Assign(1, []button.ID{11}, button.Hold); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	b.Set(button.Hold, t0)
	a.Set(button.Hold, t0.Add(time.Millisecond))
	kb.Update()
	if !kb.IsEvent(0) {
		t.Fatal("chord should fire")
	}

	// A disabled button reads None, which also releases the flag.
	a.Set(button.Idle, t0.Add(2*time.Millisecond))
	b.Set(button.None, t0.Add(2*time.Millisecond))
	kb.Update()

	b.Set(button.Hold, t0.Add(3*time.Millisecond))
	kb.Update()
	if !kb.IsEvent(1) {
		t.Error("modifier should be eligible again after passing through None")
	}
}

func TestClear(t *testing.T) {
	kb, sims := newTestKeybind(t, 1, 2, 1)
	if err := kb.Assign(0, []button.ID{10}, button.Release); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	sims[0].Set(button.Release, t0)
	kb.Update()
	if !kb.IsAnyEvent() {
		t.Fatal("event should fire before Clear")
	}

	kb.Clear()
	for i := 0; i < kb.EventCount(); i++ {
		if kb.IsEvent(i) {
			t.Errorf("IsEvent(%d) = true after Clear", i)
		}
	}
	if kb.IsAnyEvent() {
		t.Error("IsAnyEvent() = true after Clear")
	}

	// The cleared definition is inert until reassigned.
	kb.Update()
	if kb.IsEvent(0) {
		t.Error("cleared binding must be skipped by the engine")
	}

	if err := kb.Assign(0, []button.ID{10}, button.Release); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	kb.Update()
	if !kb.IsEvent(0) {
		t.Error("reassigned binding should fire again")
	}
}

func TestIsEventOutOfRange(t *testing.T) {
	kb, _ := newTestKeybind(t, 1, 2, 1)

	for _, idx := range []int{-1, 2, 100} {
		if kb.IsEvent(idx) {
			t.Errorf("IsEvent(%d) = true, want false", idx)
		}
	}
}

func TestButtonAccess(t *testing.T) {
	kb, sims := newTestKeybind(t, 3, 1, 1)

	if got := kb.Button(1); got != sims[1] {
		t.Errorf("Button(1) = %v, want slot 1", got)
	}
	if kb.Button(-1) != nil || kb.Button(3) != nil {
		t.Error("out-of-range Button() should return nil")
	}

	var ids []button.ID
	kb.ForEach(func(b button.Button) {
		ids = append(ids, b.ID())
	})
	if len(ids) != 3 || ids[0] != 10 || ids[1] != 11 || ids[2] != 12 {
		t.Errorf("ForEach visited %v, want [10 11 12]", ids)
	}

	if kb.ButtonCount() != 3 || kb.EventCount() != 1 || kb.SequenceMax() != 1 {
		t.Errorf("capacities = (%d, %d, %d), want (3, 1, 1)",
			kb.ButtonCount(), kb.EventCount(), kb.SequenceMax())
	}
}
