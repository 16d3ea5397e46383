package keybind

import "github.com/dshills/pollbind/internal/button"

// candidate records the best event found so far for one primary slot.
type candidate struct {
	event int
	ok    bool
}

// search runs the two-phase match over all assigned definitions.
//
// Phase A picks at most one candidate event per primary slot, visiting
// definitions in event order. A later definition displaces an earlier
// candidate when it is longer, or equally long with a required primary
// state that intersects the primary's current flags. A primary already
// consumed as a modifier cannot host a candidate.
//
// Phase B commits: each surviving candidate fires only if its required
// primary state intersects the primary's current flags, at which point
// its modifiers are marked consumed. The commit-time state check is
// deliberate: a candidate can win the Phase A race without matching
// (the equal-length tie-break only runs when a previous candidate
// exists), so firing is gated here, once per primary slot.
func (kb *Keybind) search() {
	for i := range kb.cands {
		kb.cands[i] = candidate{}
	}

	for i := range kb.defs {
		d := &kb.defs[i]
		if d.n == 0 {
			continue
		}
		p := d.seq[0]
		if c := kb.cands[p]; c.ok {
			best := &kb.defs[c.event]
			if d.n < best.n {
				continue
			}
			if d.n == best.n && !kb.buttons[p].State().Has(d.primary) {
				continue
			}
		}
		if kb.used[p] {
			continue
		}
		if !kb.validSequence(d) {
			continue
		}
		kb.cands[p] = candidate{event: i, ok: true}
	}

	for p, c := range kb.cands {
		if !c.ok {
			continue
		}
		d := &kb.defs[c.event]
		if !kb.buttons[p].State().Has(d.primary) {
			continue
		}
		for j := 1; j < d.n; j++ {
			kb.used[d.seq[j]] = true
		}
		kb.occurred[c.event] = true
	}
}

// validSequence checks a definition's modifiers and primary. Every
// modifier must be actively engaged, and moving away from the primary
// each modifier's last edge must be no more recent than its neighbor
// toward the primary: presses accumulated in declared order, primary
// most recent. The primary itself must report some condition.
func (kb *Keybind) validSequence(d *definition) bool {
	for j := 1; j < d.n; j++ {
		b := kb.buttons[d.seq[j]]
		if !b.State().Engaged() {
			return false
		}
		if b.PushTime().After(kb.buttons[d.seq[j-1]].PushTime()) {
			return false
		}
	}
	return kb.buttons[d.seq[0]].State() != button.None
}
