// Package engine runs the puzzle session: it owns the parts, turns pointer
// input into part state transitions, sweeps probe overlaps on a fixed tick,
// and routes the resulting events to the verifier and presentation handlers.
package engine

import (
	"math/rand"
	"sync/atomic"
	"time"

	"snapfit/assembly"
	"snapfit/config"
	"snapfit/core"
	"snapfit/events"
	"snapfit/geom"
	"snapfit/part"
	"snapfit/status"
)

// Session is the single-writer owner of all puzzle state
//
// All mutations run on the loop goroutine: pointer methods between ticks,
// Step once per tick. The event queue is the only crossing point for other
// goroutines, and consumption happens only inside Step
type Session struct {
	queue    *events.Queue
	router   *events.Router
	verifier *assembly.Verifier
	tracker  *Tracker

	puzzle *config.Puzzle
	parts  []*part.Part
	byID   map[core.PartID]*part.Part

	held *part.Part // Part under the active pointer grab, nil otherwise

	tick         atomic.Int64
	resetPending bool
	rng          *rand.Rand

	fieldW, fieldH int // Scatter area in cells, set by Resize

	// Cached metric pointers
	statTicks       *atomic.Int64
	statDrags       *atomic.Int64
	statSnaps       *atomic.Int64
	statBreaks      *atomic.Int64
	statChecks      *atomic.Int64
	statCompletions *atomic.Int64
	statResets      *atomic.Int64
	statSolved      *atomic.Bool
}

// NewSession builds the full session graph for a validated puzzle:
// parts wired to the bus, verifier and counters registered on the router
func NewSession(puzzle *config.Puzzle, reg *status.Registry) *Session {
	seed := puzzle.Options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		queue:   events.NewQueue(),
		tracker: NewTracker(),
		puzzle:  puzzle,
		byID:    make(map[core.PartID]*part.Part, len(puzzle.Parts)),
		rng:     rand.New(rand.NewSource(seed)),
		fieldW:  80,
		fieldH:  24,

		statTicks:       reg.Ints.Get("session.ticks"),
		statDrags:       reg.Ints.Get("session.drags"),
		statSnaps:       reg.Ints.Get("session.snaps"),
		statBreaks:      reg.Ints.Get("session.breaks"),
		statChecks:      reg.Ints.Get("assembly.checks"),
		statCompletions: reg.Ints.Get("assembly.completions"),
		statResets:      reg.Ints.Get("session.resets"),
		statSolved:      reg.Bools.Get("assembly.solved"),
	}
	s.router = events.NewRouter(s.queue)

	for _, ps := range puzzle.Parts {
		probes := make([]part.Probe, 0, len(ps.Probes))
		for _, pr := range ps.Probes {
			probes = append(probes, part.Probe{Offset: pr.Offset.Vec(), Half: pr.Half.Vec()})
		}
		p := part.New(core.PartID(ps.ID), ps.Start.Vec(), ps.Size.Vec(), probes, s)
		s.parts = append(s.parts, p)
		s.byID[p.ID()] = p
	}

	s.verifier = assembly.NewVerifier(puzzle.SolutionPairs(), s)
	s.router.Register(s.verifier)
	s.router.Register(s)

	return s
}

// PushEvent queues an event stamped with the current tick
// Satisfies the bus interfaces of part and assembly; safe for concurrent use
func (s *Session) PushEvent(eventType events.EventType, payload any) {
	s.queue.Push(events.Event{
		Type:    eventType,
		Payload: payload,
		Tick:    s.tick.Load(),
	})
}

// Router exposes the event router for presentation handler registration
// Register handlers before the first Step
func (s *Session) Router() *events.Router {
	return s.router
}

// Parts returns the session's parts in declaration order
func (s *Session) Parts() []*part.Part {
	return s.parts
}

// Part returns the part with the given id, or nil
func (s *Session) Part(id core.PartID) *part.Part {
	return s.byID[id]
}

// Verifier returns the assembly verifier
func (s *Session) Verifier() *assembly.Verifier {
	return s.verifier
}

// Held returns the part under the active pointer grab, or nil
func (s *Session) Held() *part.Part {
	return s.held
}

// Name returns the puzzle name
func (s *Session) Name() string {
	return s.puzzle.Name
}

// TickInterval returns the configured tick period
func (s *Session) TickInterval() time.Duration {
	return time.Duration(s.puzzle.Options.TickMS) * time.Millisecond
}

// Tick returns the number of completed steps
func (s *Session) Tick() int64 {
	return s.tick.Load()
}

// Solved reports whether the assembly currently matches the solution
func (s *Session) Solved() bool {
	return s.verifier.Solved()
}

// Resize updates the scatter field, normally from the screen dimensions
func (s *Session) Resize(w, h int) {
	if w > 0 && h > 0 {
		s.fieldW, s.fieldH = w, h
	}
}

// PressAt grabs the topmost part under the pointer, if any
// Later-declared parts render on top, so hit-testing walks in reverse
func (s *Session) PressAt(pos geom.Vec) {
	if s.held != nil {
		return
	}
	for i := len(s.parts) - 1; i >= 0; i-- {
		p := s.parts[i]
		if p.Bounds().Contains(pos.X, pos.Y) {
			s.held = p
			p.BeginDrag(pos)
			s.statDrags.Add(1)
			return
		}
	}
}

// MoveTo drags the held part to follow the pointer
func (s *Session) MoveTo(pos geom.Vec) {
	if s.held == nil {
		return
	}
	s.held.DragTo(pos)
}

// Release drops the held part
// Contacts for the final pointer position are swept and delivered first:
// the part must still be dragging when they arrive, because exits and
// entries are guarded on that state. Without this an exit that physically
// happened just before release would be ignored and a stale snap target
// would commit on the next Step. The snap, if armed, commits on the next
// Step
func (s *Session) Release() {
	if s.held == nil {
		return
	}
	s.sweepDeliver()
	s.held.EndDrag()
	s.held = nil
}

// RequestReset queues a board reset, applied at the end of the next Step
func (s *Session) RequestReset() {
	s.PushEvent(events.EventResetRequest, nil)
}

// Scatter randomizes all part positions within the field
// Probe overlaps created by scatter placement are reported to idle parts on
// the next sweep and ignored there
func (s *Session) Scatter() {
	placed := make([]geom.Rect, 0, len(s.parts))
	for _, p := range s.parts {
		pos := s.scatterSpot(p.Size(), placed)
		p.SetPos(pos)
		placed = append(placed, p.Bounds())
	}
	s.tracker.Clear()
}

// scatterSpot picks a random in-field center, retrying a few times to avoid
// stacking parts on top of each other. Crowded fields fall back to whatever
// the last try produced
func (s *Session) scatterSpot(size geom.Vec, placed []geom.Rect) geom.Vec {
	halfW, halfH := size.X/2+1, size.Y/2+1
	maxX, maxY := s.fieldW-halfW-1, s.fieldH-halfH-2
	if maxX <= halfW || maxY <= halfH {
		return geom.Vec{X: s.fieldW / 2, Y: s.fieldH / 2}
	}

	var pos geom.Vec
	for try := 0; try < 20; try++ {
		pos = geom.Vec{
			X: halfW + s.rng.Intn(maxX-halfW),
			Y: halfH + s.rng.Intn(maxY-halfH),
		}
		free := true
		candidate := geom.RectAround(pos, size.Add(geom.Vec{X: 4, Y: 2}))
		for _, r := range placed {
			if candidate.Intersects(r) {
				free = false
				break
			}
		}
		if free {
			break
		}
	}
	return pos
}

// sweepDeliver recomputes probe contacts and hands the transitions to both
// parts of each pair, exits before entries
func (s *Session) sweepDeliver() {
	ended, begun := s.tracker.Sweep(s.parts)
	for _, c := range ended {
		c.A.ProbeOverlapEnd(c.B)
		c.B.ProbeOverlapEnd(c.A)
	}
	for _, c := range begun {
		c.A.ProbeOverlapBegin(c.B, c.BOffset, c.AOffset)
		c.B.ProbeOverlapBegin(c.A, c.AOffset, c.BOffset)
	}
}

// Step advances the session one tick
//
// Phase order is load-bearing: overlap deltas for the latest drag positions
// are delivered before anything commits, so a snap never resolves against
// stale contact state; the second dispatch lets the verifier observe this
// tick's snaps before the frame renders
func (s *Session) Step() {
	s.statTicks.Store(s.tick.Add(1))

	s.sweepDeliver()

	s.router.DispatchAll()

	if s.resetPending {
		s.resetPending = false
		s.applyReset()
		return
	}

	for _, p := range s.parts {
		p.IdleStep()
	}

	s.router.DispatchAll()

	s.statSolved.Store(s.verifier.Solved())
}

// applyReset rebuilds the board: parts silently unlinked and re-placed,
// verifier and contact state cleared, stale queued events discarded
func (s *Session) applyReset() {
	s.held = nil
	for _, p := range s.parts {
		p.Reset()
	}
	if s.puzzle.Options.Scatter {
		s.Scatter()
	} else {
		for i, ps := range s.puzzle.Parts {
			s.parts[i].SetPos(ps.Start.Vec())
		}
	}
	s.verifier.Reset()
	s.tracker.Clear()
	_ = s.queue.Consume()
	s.statResets.Add(1)
	s.statSolved.Store(false)
}

func (s *Session) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventConnected,
		events.EventDisconnected,
		events.EventAssemblyComplete,
		events.EventResetRequest,
	}
}

// HandleEvent keeps the session counters and latches reset requests
// The reset itself is applied at a safe point inside Step, not mid-dispatch
func (s *Session) HandleEvent(event events.Event) {
	switch event.Type {
	case events.EventConnected:
		s.statSnaps.Add(1)
		s.statChecks.Add(1)
	case events.EventDisconnected:
		s.statBreaks.Add(1)
		s.statChecks.Add(1)
	case events.EventAssemblyComplete:
		s.statCompletions.Add(1)
	case events.EventResetRequest:
		s.resetPending = true
	}
}
