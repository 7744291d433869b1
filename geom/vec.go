// Package geom provides the integer 2D primitives shared by the puzzle core
// and the terminal host: vectors for positions/offsets and axis-aligned
// rectangles for probe sensor regions. Cell-based coordinates keep snap
// arithmetic exact.
package geom

// Vec is a 2D point or offset in terminal cell coordinates
type Vec struct {
	X, Y int
}

// Add returns v + o
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns the component-wise negation
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Scale returns v multiplied by k component-wise
func (v Vec) Scale(k int) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// IsZero reports whether both components are zero
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
