package events

// EventType represents the type of puzzle event
type EventType int

const (
	// EventConnected signals that a part committed a snap and asserted a link
	// Trigger: Part.IdleStep applying a pending snap target
	// Consumer: assembly.Verifier, audio, status | Payload: *ConnectionPayload
	EventConnected EventType = iota

	// EventDisconnected signals that an asserted link was broken
	// Trigger: Part.BeginDrag on a part holding a committed connection
	// Consumer: assembly.Verifier, audio, status | Payload: *ConnectionPayload
	EventDisconnected

	// EventAssemblyComplete signals that the active connection set first
	// matched the solution set
	// Trigger: assembly.Verifier on the transition into equality
	// Consumer: audio, render overlay state | Payload: *AssemblyCompletePayload
	EventAssemblyComplete

	// EventResetRequest signals a request to re-scatter the parts and clear
	// all asserted connections
	// Trigger: host input ('r' key)
	// Consumer: engine.Session | Payload: nil
	EventResetRequest
)

// Event represents a single puzzle event with metadata
type Event struct {
	Type    EventType
	Payload any
	Tick    int64 // Session tick at push time, for ordering diagnostics
}
