package part

import (
	"snapfit/geom"
)

// Probe is a local-space connector sensor on a part
// Offset anchors the sensor relative to the part center, on the edge the
// connector mates at. Half is the sensor half-extent in cells; the sensor
// region spans 2*Half+1 cells per axis so it is always centered on a cell
type Probe struct {
	Offset geom.Vec
	Half   geom.Vec
}

// Region returns the probe's sensor rect for a part centered at pos
func (pr Probe) Region(pos geom.Vec) geom.Rect {
	c := pos.Add(pr.Offset)
	return geom.Rect{
		X: c.X - pr.Half.X,
		Y: c.Y - pr.Half.Y,
		W: 2*pr.Half.X + 1,
		H: 2*pr.Half.Y + 1,
	}
}
