// Package part implements the drag/snap state machine for a single puzzle
// piece. Parts mutate only their own state; link assertions travel to the
// rest of the session as Connected/Disconnected events on the bus.
package part

import (
	"snapfit/core"
	"snapfit/events"
	"snapfit/geom"
)

// DragState tracks whether a part is following the pointer
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
)

// Bus is the event sink parts publish to. *engine.Session satisfies it
type Bus interface {
	PushEvent(eventType events.EventType, payload any)
}

// Part owns the drag/snap state for a single puzzle piece
//
// State machine: Idle -> Dragging -> Idle. Snap targets are armed by probe
// overlaps while dragging and committed on the first idle tick after release,
// never during the drag itself. All inapplicable transitions are silent
// no-ops; the host may deliver events for parts it is not tracking
type Part struct {
	id     core.PartID
	pos    geom.Vec // Center cell
	size   geom.Vec
	probes []Probe

	state      DragState
	grabOffset geom.Vec // Captured once at BeginDrag, never recomputed

	connectedTo core.PartID // Live link, or candidate while dragging
	snapTarget  geom.Vec
	snapPending bool // snapPending implies connectedTo is set

	bus Bus
}

// New creates an idle, unlinked part centered at pos
func New(id core.PartID, pos, size geom.Vec, probes []Probe, bus Bus) *Part {
	return &Part{
		id:     id,
		pos:    pos,
		size:   size,
		probes: probes,
		bus:    bus,
	}
}

func (p *Part) ID() core.PartID { return p.id }

func (p *Part) Pos() geom.Vec { return p.pos }

func (p *Part) Size() geom.Vec { return p.size }

func (p *Part) Probes() []Probe { return p.probes }

// Bounds returns the part's body rect for hit-testing and rendering
func (p *Part) Bounds() geom.Rect {
	return geom.RectAround(p.pos, p.size)
}

func (p *Part) Dragging() bool { return p.state == StateDragging }

// ConnectedTo returns the linked part id, or core.None
// While dragging this is the snap candidate, not yet an asserted link
func (p *Part) ConnectedTo() core.PartID { return p.connectedTo }

// SetPos places the part directly, bypassing drag logic
// Used by session setup and reset scatter
func (p *Part) SetPos(pos geom.Vec) {
	p.pos = pos
}

// Reset clears drag and link state without emitting events
// The session restores the verifier separately when it re-scatters
func (p *Part) Reset() {
	p.state = StateIdle
	p.grabOffset = geom.Vec{}
	p.connectedTo = core.None
	p.snapPending = false
}

// BeginDrag enters the dragging state, capturing the grab offset once
// Starting a drag always breaks an existing link: the Disconnected event is
// pushed synchronously, before any overlap re-evaluation for this tick.
// A leftover snap target from an earlier drag is discarded so it cannot
// commit after the re-grab
func (p *Part) BeginDrag(pointer geom.Vec) {
	if p.state != StateIdle {
		return
	}
	p.state = StateDragging
	p.grabOffset = pointer.Sub(p.pos)
	p.snapPending = false

	if !p.connectedTo.IsNone() {
		other := p.connectedTo
		p.connectedTo = core.None
		p.emit(events.EventDisconnected, &events.ConnectionPayload{From: p.id, To: other})
	}
}

// DragTo moves the part to follow the pointer
// Pure positional follow; no snapping and no events while dragging
func (p *Part) DragTo(pointer geom.Vec) {
	if p.state != StateDragging {
		return
	}
	p.pos = pointer.Sub(p.grabOffset)
}

// EndDrag returns the part to idle without touching geometry
// Snap resolution waits for the next IdleStep so overlap deltas for the
// final drag position are processed first
func (p *Part) EndDrag() {
	if p.state != StateDragging {
		return
	}
	p.state = StateIdle
}

// IdleStep commits a pending snap, if any
// Called once per tick while idle. This is the only place geometry snaps;
// once the target is consumed, repeated calls do nothing until a new
// overlap arms it again
func (p *Part) IdleStep() {
	if p.state != StateIdle || !p.snapPending {
		return
	}
	p.pos = p.snapTarget
	p.snapPending = false
	p.emit(events.EventConnected, &events.ConnectionPayload{From: p.id, To: p.connectedTo})
}

// ProbeOverlapBegin arms a snap candidate while this part is being dragged
// Overlaps reported while idle are ignored so a stationary part cannot catch
// a moving one. The target aligns this part's probe anchor with the other's:
// with connectors placed symmetrically about the shared edge this reduces to
// other.Pos + otherOffset*2. A later overlap silently replaces the candidate
func (p *Part) ProbeOverlapBegin(other *Part, otherOffset, ownOffset geom.Vec) {
	if p.state != StateDragging {
		return
	}
	p.connectedTo = other.id
	p.snapTarget = other.pos.Add(otherOffset).Sub(ownOffset)
	p.snapPending = true
}

// ProbeOverlapEnd disarms the snap candidate when its probes separate
// Acted on only while dragging and only when the exiting part is the live
// candidate, so another probe's exit cannot clear it. Without this a part
// dragged across a connector and away would still snap back on release
func (p *Part) ProbeOverlapEnd(other *Part) {
	if p.state != StateDragging || p.connectedTo != other.id {
		return
	}
	p.connectedTo = core.None
	p.snapPending = false
}

func (p *Part) emit(eventType events.EventType, payload any) {
	if p.bus == nil {
		return
	}
	p.bus.PushEvent(eventType, payload)
}
