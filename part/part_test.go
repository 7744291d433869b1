package part

import (
	"testing"

	"snapfit/core"
	"snapfit/events"
	"snapfit/geom"
)

// recorderBus captures pushed events for assertions
type recorderBus struct {
	pushed []events.Event
}

func (b *recorderBus) PushEvent(eventType events.EventType, payload any) {
	b.pushed = append(b.pushed, events.Event{Type: eventType, Payload: payload})
}

func (b *recorderBus) count(eventType events.EventType) int {
	n := 0
	for _, ev := range b.pushed {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func edgeProbe(offset geom.Vec) []Probe {
	return []Probe{{Offset: offset, Half: geom.Vec{X: 1, Y: 1}}}
}

// TestDragFollow tests that position tracks the pointer minus the grab offset
func TestDragFollow(t *testing.T) {
	bus := &recorderBus{}
	initial := geom.Vec{X: 10, Y: 5}
	p := New("gear", initial, geom.Vec{X: 5, Y: 3}, nil, bus)

	p1 := geom.Vec{X: 12, Y: 6}
	p2 := geom.Vec{X: 20, Y: 9}
	p.BeginDrag(p1)
	p.DragTo(p2)

	// position == P2 - (P1 - initialPosition)
	want := p2.Sub(p1.Sub(initial))
	if p.Pos() != want {
		t.Errorf("Expected position %v, got %v", want, p.Pos())
	}

	// Grab offset is captured once, not recomputed mid-drag
	p3 := geom.Vec{X: 3, Y: 30}
	p.DragTo(p3)
	want = p3.Sub(p1.Sub(initial))
	if p.Pos() != want {
		t.Errorf("Expected position %v after second move, got %v", want, p.Pos())
	}

	if bus.count(events.EventConnected) != 0 || bus.count(events.EventDisconnected) != 0 {
		t.Errorf("Expected no events during plain drag, got %d", len(bus.pushed))
	}
}

// TestDragToIgnoredWhileIdle tests that positional follow requires the dragging state
func TestDragToIgnoredWhileIdle(t *testing.T) {
	bus := &recorderBus{}
	initial := geom.Vec{X: 4, Y: 4}
	p := New("gear", initial, geom.Vec{X: 3, Y: 3}, nil, bus)

	p.DragTo(geom.Vec{X: 40, Y: 40})
	if p.Pos() != initial {
		t.Errorf("Expected position unchanged at %v, got %v", initial, p.Pos())
	}
}

// TestSnapCommit tests that a pending snap is applied on the idle tick after release
func TestSnapCommit(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, edgeProbe(geom.Vec{X: -3, Y: 0}), bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, edgeProbe(geom.Vec{X: 3, Y: 0}), bus)

	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.DragTo(geom.Vec{X: 13, Y: 10})
	p.ProbeOverlapBegin(anchor, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.EndDrag()

	// EndDrag itself changes no geometry
	if p.Pos() != (geom.Vec{X: 13, Y: 10}) {
		t.Errorf("Expected position unchanged by EndDrag, got %v", p.Pos())
	}
	if bus.count(events.EventConnected) != 0 {
		t.Error("Expected no Connected event before the idle tick")
	}

	p.IdleStep()

	// Probe anchors align: target = anchor.Pos + otherOffset - ownOffset
	want := geom.Vec{X: 14, Y: 10}
	if p.Pos() != want {
		t.Errorf("Expected snapped position %v, got %v", want, p.Pos())
	}
	if p.ConnectedTo() != core.PartID("axle") {
		t.Errorf("Expected link to axle, got %q", p.ConnectedTo())
	}
	if bus.count(events.EventConnected) != 1 {
		t.Errorf("Expected exactly 1 Connected event, got %d", bus.count(events.EventConnected))
	}

	payload := bus.pushed[0].Payload.(*events.ConnectionPayload)
	if payload.From != "gear" || payload.To != "axle" {
		t.Errorf("Expected Connected(gear, axle), got (%s, %s)", payload.From, payload.To)
	}
}

// TestSnapIdempotent tests that repeated idle ticks after a commit do nothing
func TestSnapIdempotent(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.ProbeOverlapBegin(anchor, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.EndDrag()
	p.IdleStep()

	snapped := p.Pos()
	connected := bus.count(events.EventConnected)

	p.IdleStep()
	p.IdleStep()

	if p.Pos() != snapped {
		t.Errorf("Expected position to stay %v, got %v", snapped, p.Pos())
	}
	if bus.count(events.EventConnected) != connected {
		t.Errorf("Expected no further Connected events, got %d", bus.count(events.EventConnected)-connected)
	}
}

// TestBeginDragBreaksLink tests that grabbing a linked part emits exactly one Disconnected
func TestBeginDragBreaksLink(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	// Establish the link through the normal flow
	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.ProbeOverlapBegin(anchor, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.EndDrag()
	p.IdleStep()
	if p.ConnectedTo() != core.PartID("axle") {
		t.Fatalf("Expected link to axle before re-grab, got %q", p.ConnectedTo())
	}

	p.BeginDrag(p.Pos())

	if !p.ConnectedTo().IsNone() {
		t.Errorf("Expected link cleared by BeginDrag, got %q", p.ConnectedTo())
	}
	if bus.count(events.EventDisconnected) != 1 {
		t.Errorf("Expected exactly 1 Disconnected event, got %d", bus.count(events.EventDisconnected))
	}

	last := bus.pushed[len(bus.pushed)-1]
	payload := last.Payload.(*events.ConnectionPayload)
	if last.Type != events.EventDisconnected || payload.From != "gear" || payload.To != "axle" {
		t.Errorf("Expected Disconnected(gear, axle), got type=%v (%s, %s)", last.Type, payload.From, payload.To)
	}
}

// TestOverlapExitCancelsPending tests that leaving the probe region before release disarms the snap
func TestOverlapExitCancelsPending(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.DragTo(geom.Vec{X: 13, Y: 10})
	p.ProbeOverlapBegin(anchor, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.DragTo(geom.Vec{X: 2, Y: 2})
	p.ProbeOverlapEnd(anchor)
	p.EndDrag()

	dropped := p.Pos()
	p.IdleStep()

	if p.Pos() != dropped {
		t.Errorf("Expected no snap after overlap exit, position moved %v -> %v", dropped, p.Pos())
	}
	if bus.count(events.EventConnected) != 0 {
		t.Errorf("Expected no Connected event, got %d", bus.count(events.EventConnected))
	}
	if !p.ConnectedTo().IsNone() {
		t.Errorf("Expected no link, got %q", p.ConnectedTo())
	}
}

// TestOverlapExitOtherPartIgnored tests that a different part's exit cannot clear the live candidate
func TestOverlapExitOtherPartIgnored(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	bystander := New("cog", geom.Vec{X: 0, Y: 0}, geom.Vec{X: 5, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.ProbeOverlapBegin(anchor, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.ProbeOverlapEnd(bystander)
	p.EndDrag()
	p.IdleStep()

	if p.ConnectedTo() != core.PartID("axle") {
		t.Errorf("Expected candidate to survive bystander exit, got link %q", p.ConnectedTo())
	}
	if bus.count(events.EventConnected) != 1 {
		t.Errorf("Expected 1 Connected event, got %d", bus.count(events.EventConnected))
	}
}

// TestLastOverlapWins tests that a newer candidate silently replaces an armed one
func TestLastOverlapWins(t *testing.T) {
	bus := &recorderBus{}
	first := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	second := New("cog", geom.Vec{X: 40, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.ProbeOverlapBegin(first, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.ProbeOverlapBegin(second, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.EndDrag()
	p.IdleStep()

	if p.ConnectedTo() != core.PartID("cog") {
		t.Errorf("Expected link to the newer candidate cog, got %q", p.ConnectedTo())
	}
	want := geom.Vec{X: 34, Y: 10}
	if p.Pos() != want {
		t.Errorf("Expected snap to %v, got %v", want, p.Pos())
	}
	if bus.count(events.EventConnected) != 1 {
		t.Errorf("Expected a single Connected event, got %d", bus.count(events.EventConnected))
	}
}

// TestOverlapIgnoredWhileIdle tests that a stationary part cannot catch a moving one
func TestOverlapIgnoredWhileIdle(t *testing.T) {
	bus := &recorderBus{}
	mover := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	stationary := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	// Both sides of the overlap are reported; only the dragged side acts
	stationary.ProbeOverlapBegin(mover, geom.Vec{X: 3, Y: 0}, geom.Vec{X: -3, Y: 0})
	stationary.IdleStep()

	if !stationary.ConnectedTo().IsNone() {
		t.Errorf("Expected idle part to ignore overlap, got link %q", stationary.ConnectedTo())
	}
	if stationary.Pos() != (geom.Vec{X: 20, Y: 10}) {
		t.Errorf("Expected idle part to stay put, got %v", stationary.Pos())
	}
	if len(bus.pushed) != 0 {
		t.Errorf("Expected no events, got %d", len(bus.pushed))
	}
}

// TestReGrabDiscardsStaleTarget tests that grabbing again before the idle tick cancels the snap
func TestReGrabDiscardsStaleTarget(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.ProbeOverlapBegin(anchor, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.EndDrag()

	// Re-grab lands before the idle tick ever runs
	p.BeginDrag(p.Pos())
	p.DragTo(geom.Vec{X: 2, Y: 2})
	p.EndDrag()
	p.IdleStep()

	if p.Pos() != (geom.Vec{X: 2, Y: 2}) {
		t.Errorf("Expected part to stay where it was dropped, got %v", p.Pos())
	}
	if bus.count(events.EventConnected) != 0 {
		t.Errorf("Expected no Connected from the stale target, got %d", bus.count(events.EventConnected))
	}
}

// TestSymmetricOffsetsDouble tests the symmetric-connector case of the alignment formula
func TestSymmetricOffsetsDouble(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 30, Y: 12}, geom.Vec{X: 7, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 12}, geom.Vec{X: 7, Y: 3}, nil, bus)

	// Connectors mirrored about the shared edge: ownOffset == -otherOffset
	otherOffset := geom.Vec{X: -4, Y: 0}
	p.BeginDrag(geom.Vec{X: 5, Y: 12})
	p.ProbeOverlapBegin(anchor, otherOffset, otherOffset.Neg())
	p.EndDrag()
	p.IdleStep()

	want := anchor.Pos().Add(otherOffset.Scale(2))
	if p.Pos() != want {
		t.Errorf("Expected symmetric snap at %v, got %v", want, p.Pos())
	}
}

// TestReset tests that reset clears link and drag state silently
func TestReset(t *testing.T) {
	bus := &recorderBus{}
	anchor := New("axle", geom.Vec{X: 20, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)
	p := New("gear", geom.Vec{X: 5, Y: 10}, geom.Vec{X: 5, Y: 3}, nil, bus)

	p.BeginDrag(geom.Vec{X: 5, Y: 10})
	p.ProbeOverlapBegin(anchor, geom.Vec{X: -3, Y: 0}, geom.Vec{X: 3, Y: 0})
	p.EndDrag()
	p.IdleStep()

	before := len(bus.pushed)
	p.Reset()

	if !p.ConnectedTo().IsNone() {
		t.Errorf("Expected no link after reset, got %q", p.ConnectedTo())
	}
	if p.Dragging() {
		t.Error("Expected idle state after reset")
	}
	if len(bus.pushed) != before {
		t.Errorf("Expected reset to emit nothing, got %d new events", len(bus.pushed)-before)
	}

	// A stale target must not survive the reset
	p.IdleStep()
	if bus.count(events.EventConnected) != 1 {
		t.Errorf("Expected no snap after reset, got %d Connected events", bus.count(events.EventConnected))
	}
}
