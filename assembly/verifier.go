// Package assembly tracks the connection graph asserted by the parts and
// checks it against the puzzle's solution after every change.
package assembly

import (
	"snapfit/core"
	"snapfit/events"
)

// Bus is where the verifier reports completion. *engine.Session satisfies it
type Bus interface {
	PushEvent(eventType events.EventType, payload any)
}

// Verifier folds Connected/Disconnected events into the active pair set
//
// The active set is mutated only through the two event paths, so it is always
// the replay of every Connected minus every Disconnected seen so far, with
// duplicates collapsing (a set, not a multiset). The solution set is fixed at
// construction
type Verifier struct {
	solution map[core.Pair]struct{}
	active   map[core.Pair]struct{}
	solved   bool

	bus Bus
}

// NewVerifier creates a verifier for the given solution pairs
// The pairs are canonicalized here so callers may list them in any order
func NewVerifier(solution []core.Pair, bus Bus) *Verifier {
	v := &Verifier{
		solution: make(map[core.Pair]struct{}, len(solution)),
		active:   make(map[core.Pair]struct{}, len(solution)),
		bus:      bus,
	}
	for _, p := range solution {
		v.solution[core.NewPair(p.A, p.B)] = struct{}{}
	}
	return v
}

func (v *Verifier) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventConnected,
		events.EventDisconnected,
	}
}

func (v *Verifier) HandleEvent(event events.Event) {
	payload, ok := event.Payload.(*events.ConnectionPayload)
	if !ok {
		return
	}
	switch event.Type {
	case events.EventConnected:
		v.OnConnected(payload.From, payload.To)
	case events.EventDisconnected:
		v.OnDisconnected(payload.From, payload.To)
	}
}

// OnConnected inserts the canonical pair and re-checks the assembly
// Duplicate inserts are absorbed by set semantics
func (v *Verifier) OnConnected(a, b core.PartID) {
	v.active[core.NewPair(a, b)] = struct{}{}
	v.recheck()
}

// OnDisconnected removes the canonical pair and re-checks the assembly
// Removing an absent pair is a no-op, not an error
func (v *Verifier) OnDisconnected(a, b core.PartID) {
	delete(v.active, core.NewPair(a, b))
	v.recheck()
}

// CheckAssembly reports whether the active set equals the solution set
// Set equality only; order and insertion history are irrelevant
func (v *Verifier) CheckAssembly() bool {
	if len(v.active) != len(v.solution) {
		return false
	}
	for pair := range v.solution {
		if _, ok := v.active[pair]; !ok {
			return false
		}
	}
	return true
}

// Solved reports whether the assembly is currently complete
func (v *Verifier) Solved() bool {
	return v.solved
}

// ActiveCount returns the number of currently asserted pairs
func (v *Verifier) ActiveCount() int {
	return len(v.active)
}

// SolutionSize returns the number of pairs a complete assembly needs
func (v *Verifier) SolutionSize() int {
	return len(v.solution)
}

// Reset clears the active set and the solved latch
// Used by the session's re-scatter path together with part resets
func (v *Verifier) Reset() {
	clear(v.active)
	v.solved = false
}

// recheck updates the solved latch and emits AssemblyComplete exactly on the
// transition into equality, never while equality already held and never on
// inequality
func (v *Verifier) recheck() {
	if !v.CheckAssembly() {
		v.solved = false
		return
	}
	if v.solved {
		return
	}
	v.solved = true
	if v.bus != nil {
		v.bus.PushEvent(events.EventAssemblyComplete, &events.AssemblyCompletePayload{Pairs: len(v.solution)})
	}
}
