package engine

import (
	"snapfit/core"
	"snapfit/geom"
	"snapfit/part"
)

// Contact identifies one overlapping probe pair and the local offsets each
// side needs to compute its snap target
type Contact struct {
	A, B             *part.Part
	AOffset, BOffset geom.Vec
}

// pairKey canonically identifies a probe pair across sweeps
type pairKey struct {
	a, b   core.PartID
	ap, bp int
}

func newPairKey(a core.PartID, ap int, b core.PartID, bp int) pairKey {
	if b < a {
		a, b = b, a
		ap, bp = bp, ap
	}
	return pairKey{a: a, b: b, ap: ap, bp: bp}
}

// Tracker detects probe-region overlap transitions between sweeps
//
// The parts are few and the sweep is a straight pairwise AABB pass, so no
// spatial index is kept. Deltas are reported in stable part order: all
// exits first, then entries, matching the physical order in which a probe
// dragged from one region to another changed state
type Tracker struct {
	active map[pairKey]bool
}

func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[pairKey]bool),
	}
}

// Sweep recomputes probe overlaps and returns the transitions since the
// previous sweep. Pairs that stayed overlapping or stayed apart produce
// nothing
func (t *Tracker) Sweep(parts []*part.Part) (ended, begun []Contact) {
	cur := make(map[pairKey]bool, len(t.active))

	for i := 0; i < len(parts); i++ {
		a := parts[i]
		aProbes := a.Probes()
		for j := i + 1; j < len(parts); j++ {
			b := parts[j]
			bProbes := b.Probes()

			for ai := range aProbes {
				regionA := aProbes[ai].Region(a.Pos())
				for bi := range bProbes {
					key := newPairKey(a.ID(), ai, b.ID(), bi)
					contact := Contact{
						A:       a,
						B:       b,
						AOffset: aProbes[ai].Offset,
						BOffset: bProbes[bi].Offset,
					}

					if regionA.Intersects(bProbes[bi].Region(b.Pos())) {
						cur[key] = true
						if !t.active[key] {
							begun = append(begun, contact)
						}
					} else if t.active[key] {
						ended = append(ended, contact)
					}
				}
			}
		}
	}

	t.active = cur
	return ended, begun
}

// ActiveCount returns the number of currently overlapping probe pairs
func (t *Tracker) ActiveCount() int {
	return len(t.active)
}

// Clear forgets all contact state
// The next sweep reports every current overlap as begun again; idle parts
// ignore those, so clearing after a scatter is safe
func (t *Tracker) Clear() {
	clear(t.active)
}
