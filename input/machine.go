// Package input parses terminal events into semantic intents.
//
// The machine tracks the primary mouse button so the host receives clean
// press, drag, and release edges instead of raw motion events.
package input

import (
	"github.com/gdamore/tcell/v2"

	"snapfit/geom"
)

// Machine is the input state machine
// Parses tcell events into Intents
type Machine struct {
	buttonDown bool
	keyTable   map[rune]IntentType
}

// NewMachine creates a new input machine with the default bindings
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// DefaultKeyTable maps rune keys to intents
func DefaultKeyTable() map[rune]IntentType {
	return map[rune]IntentType{
		'q': IntentQuit,
		'r': IntentReset,
		'm': IntentToggleMute,
	}
}

// Reset clears pending button state
func (m *Machine) Reset() {
	m.buttonDown = false
}

// Process parses a terminal event and returns an Intent
// Returns nil if the event maps to no action
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return &Intent{Type: IntentQuit}
	}
	if ev.Key() == tcell.KeyRune {
		if t, ok := m.keyTable[ev.Rune()]; ok {
			return &Intent{Type: t}
		}
	}
	return nil
}

// processMouse runs the button edge machine. Motion with the primary
// button held is a drag; motion without it maps to nothing
func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	pos := geom.Vec{X: x, Y: y}

	if ev.Buttons()&tcell.Button1 != 0 {
		if m.buttonDown {
			return &Intent{Type: IntentDrag, Pos: pos}
		}
		m.buttonDown = true
		return &Intent{Type: IntentPress, Pos: pos}
	}

	if m.buttonDown {
		m.buttonDown = false
		return &Intent{Type: IntentRelease, Pos: pos}
	}
	return nil
}
