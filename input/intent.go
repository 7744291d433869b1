package input

import "snapfit/geom"

// IntentType classifies a parsed input action
type IntentType int

const (
	IntentNone IntentType = iota

	// IntentQuit exits the application
	IntentQuit
	// IntentReset requests a board reset through the session bus
	IntentReset
	// IntentToggleMute flips audio cue playback
	IntentToggleMute

	// IntentPress grabs the part under the pointer
	IntentPress
	// IntentDrag moves the grabbed part to the pointer
	IntentDrag
	// IntentRelease drops the grabbed part at the pointer
	IntentRelease

	// IntentResize reports new terminal dimensions
	IntentResize
)

// Intent is a semantic input action
// Pos is set for the pointer intents and is the cell under the pointer
type Intent struct {
	Type IntentType
	Pos  geom.Vec
}
