package button

import "time"

// Sampler reads the raw level of a physical contact.
// It returns true while the contact reads pressed.
type Sampler func() bool

// Default timing for a Debounced button.
const (
	DefaultDebounce    = 10 * time.Millisecond
	DefaultRepeatDelay = 500 * time.Millisecond
	DefaultRapidWindow = 250 * time.Millisecond
)

// Option configures a Debounced button.
type Option func(*Debounced)

// WithClock sets the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Debounced) {
		if now != nil {
			d.now = now
		}
	}
}

// WithDebounce sets how long the raw level must be stable before an
// edge is accepted.
func WithDebounce(interval time.Duration) Option {
	return func(d *Debounced) {
		if interval >= 0 {
			d.debounce = interval
		}
	}
}

// WithRepeatDelay sets the interval between Delay pulses while held.
// A zero delay disables repeat pulses.
func WithRepeatDelay(delay time.Duration) Option {
	return func(d *Debounced) {
		if delay >= 0 {
			d.repeatDelay = delay
		}
	}
}

// WithRapidWindow sets how soon after a release a re-press counts as Rapid.
func WithRapidWindow(window time.Duration) Option {
	return func(d *Debounced) {
		if window >= 0 {
			d.rapidWindow = window
		}
	}
}

// Debounced is a software push-button. Each Update it samples the raw
// contact level, debounces it, and derives the condition flags and the
// last-edge time the keybind engine reads.
type Debounced struct {
	id     ID
	sample Sampler
	now    func() time.Time

	debounce    time.Duration
	repeatDelay time.Duration
	rapidWindow time.Duration

	enabled bool
	pressed bool
	state   State

	raw      bool
	rawSince time.Time

	lastEdge    time.Time
	lastRelease time.Time
	lastRepeat  time.Time
}

// NewDebounced creates a debounced button reading the given sampler.
func NewDebounced(id ID, sample Sampler, opts ...Option) *Debounced {
	d := &Debounced{
		id:          id,
		sample:      sample,
		now:         time.Now,
		debounce:    DefaultDebounce,
		repeatDelay: DefaultRepeatDelay,
		rapidWindow: DefaultRapidWindow,
		enabled:     true,
		state:       Idle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the button's stable identifier.
func (d *Debounced) ID() ID {
	return d.id
}

// State returns the condition flags computed by the last Update.
func (d *Debounced) State() State {
	return d.state
}

// PushTime returns the time of the most recent accepted press or
// release edge.
func (d *Debounced) PushTime() time.Time {
	return d.lastEdge
}

// Enable re-enables a disabled button. The button reports Idle until
// its next edge.
func (d *Debounced) Enable() {
	d.enabled = true
	d.state = Idle
	d.pressed = false
}

// Disable makes the button report None until re-enabled.
func (d *Debounced) Disable() {
	d.enabled = false
	d.state = None
}

// Update samples and debounces the contact, then derives flags:
// Push (with Rapid on a quick re-press) on the press edge, Hold while
// pressed, an added Delay pulse each repeat interval, Release on the
// release edge, Idle otherwise.
func (d *Debounced) Update() {
	if !d.enabled {
		d.state = None
		return
	}

	now := d.now()
	raw := d.sample()
	if raw != d.raw {
		d.raw = raw
		d.rawSince = now
	}
	stable := now.Sub(d.rawSince) >= d.debounce

	switch {
	case stable && raw && !d.pressed:
		d.pressed = true
		d.lastEdge = now
		d.lastRepeat = now
		d.state = Push
		if !d.lastRelease.IsZero() && now.Sub(d.lastRelease) <= d.rapidWindow {
			d.state = d.state.With(Rapid)
		}

	case stable && !raw && d.pressed:
		d.pressed = false
		d.lastEdge = now
		d.lastRelease = now
		d.state = Release

	case d.pressed:
		d.state = Hold
		if d.repeatDelay > 0 && now.Sub(d.lastRepeat) >= d.repeatDelay {
			d.state = d.state.With(Delay)
			d.lastRepeat = now
		}

	default:
		d.state = Idle
	}
}
