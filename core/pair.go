package core

// Pair is an unordered pair of part identifiers representing one asserted
// connection. It is always stored canonically with A <= B, so a Pair built
// from (x, y) compares equal to one built from (y, x) and is usable as a
// map key directly.
type Pair struct {
	A, B PartID
}

// NewPair returns the canonical pair for two part identifiers
// Both the connect and disconnect paths must build pairs through here so the
// two can never disagree on ordering
func NewPair(a, b PartID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Has reports whether id is one of the pair's endpoints
func (p Pair) Has(id PartID) bool {
	return p.A == id || p.B == id
}

// Other returns the opposite endpoint of id, or None when id is not part of
// the pair
func (p Pair) Other(id PartID) PartID {
	switch id {
	case p.A:
		return p.B
	case p.B:
		return p.A
	}
	return None
}

func (p Pair) String() string {
	return string(p.A) + "+" + string(p.B)
}
