// Package audio plays short tone cues for assembly events.
//
// The engine degrades to silence when the speaker cannot be
// initialized, so a missing audio device never blocks play.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snapfit/events"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies one of the feedback sounds
type Cue int

const (
	// CueSnap plays when a part locks onto a neighbor
	CueSnap Cue = iota
	// CueBreak plays when an existing joint is pulled apart
	CueBreak
	// CueComplete plays when the full assembly is verified
	CueComplete
)

// Engine owns the speaker and maps session events to cues.
// It registers on the event router as a handler.
type Engine struct {
	ready bool
	muted bool
}

// NewEngine initializes the speaker unless muted is set.
// The returned engine is always usable; on init failure it
// stays silent and the error is reported for logging.
func NewEngine(muted bool) (*Engine, error) {
	e := &Engine{muted: muted}
	if muted {
		return e, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return e, err
	}
	e.ready = true
	return e, nil
}

// Muted reports whether cue playback is suppressed
func (e *Engine) Muted() bool {
	return e.muted
}

// ToggleMute flips mute and returns the new state
func (e *Engine) ToggleMute() bool {
	e.muted = !e.muted
	return e.muted
}

// Play queues the cue on the speaker mixer
func (e *Engine) Play(cue Cue) {
	if !e.ready || e.muted {
		return
	}
	switch cue {
	case CueSnap:
		speaker.Play(tone(880, 50*time.Millisecond))
	case CueBreak:
		speaker.Play(tone(196, 90*time.Millisecond))
	case CueComplete:
		// Rising arpeggio, played as one sequential streamer
		speaker.Play(beep.Seq(
			tone(523, 90*time.Millisecond),
			tone(659, 90*time.Millisecond),
			tone(784, 140*time.Millisecond),
		))
	}
}

// Close releases the speaker
func (e *Engine) Close() {
	if e.ready {
		speaker.Close()
	}
}

// HandleEvent implements events.Handler
func (e *Engine) HandleEvent(event events.Event) {
	switch event.Type {
	case events.EventConnected:
		e.Play(CueSnap)
	case events.EventDisconnected:
		e.Play(CueBreak)
	case events.EventAssemblyComplete:
		e.Play(CueComplete)
	}
}

// EventTypes implements events.Handler
func (e *Engine) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventConnected,
		events.EventDisconnected,
		events.EventAssemblyComplete,
	}
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, _ := generators.SineTone(sampleRate, freq)
	return beep.Take(sampleRate.N(d), sine)
}
