package events

import (
	"snapfit/core"
)

// ConnectionPayload identifies the two endpoints of a link change.
// From is the part whose state machine emitted the event; To is the part it
// was linked with. The verifier canonicalizes the pair, so the distinction
// only matters for presentation.
type ConnectionPayload struct {
	From core.PartID
	To   core.PartID
}

// AssemblyCompletePayload reports the size of the matched solution
type AssemblyCompletePayload struct {
	Pairs int
}
