// Package core defines the identifier types the rest of the puzzle is keyed
// on: stable part identifiers and canonical unordered connection pairs.
package core

// PartID is the stable identifier of a puzzle part for the lifetime of a
// session. It is a plain content-comparable string so graph keys, event
// payloads and solution files all share one representation; comparison is
// the natural lexicographic order.
type PartID string

// None is the zero PartID, used where no part is referenced
const None PartID = ""

// IsNone reports whether the id is the zero value
func (id PartID) IsNone() bool {
	return id == None
}

func (id PartID) String() string {
	return string(id)
}
