package geom

// Rect is an axis-aligned box in cell coordinates
// X,Y is the top-left corner; the region covers [X, X+W) x [Y, Y+H)
type Rect struct {
	X, Y, W, H int
}

// RectAround builds the rect of the given size centered on c
// Odd sizes center exactly; even sizes bias the extra cell to the left/top
func RectAround(c Vec, size Vec) Rect {
	return Rect{
		X: c.X - size.X/2,
		Y: c.Y - size.Y/2,
		W: size.X,
		H: size.Y,
	}
}

// Right returns the x coordinate one past the right edge
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y coordinate one past the bottom edge
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center cell of the rect
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether the cell (x, y) lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether two rects share at least one cell
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}
