package config

import (
	"snapfit/core"
	"snapfit/geom"
)

// Puzzle is the root puzzle definition
type Puzzle struct {
	Name     string     `yaml:"name"`
	Parts    []PartSpec `yaml:"parts"`
	Solution []PairSpec `yaml:"solution"`
	Options  Options    `yaml:"options"`
}

// PartSpec declares one draggable part and its connector probes
type PartSpec struct {
	ID     string      `yaml:"id"`
	Start  VecSpec     `yaml:"start"`
	Size   VecSpec     `yaml:"size"`
	Probes []ProbeSpec `yaml:"probes,omitempty"`
}

// ProbeSpec declares a connector sensor in part-local cells
// Offset anchors the sensor relative to the part center; Half is the sensor
// half-extent, so the capture window spans 2*Half+1 cells per axis
type ProbeSpec struct {
	Offset VecSpec `yaml:"offset"`
	Half   VecSpec `yaml:"half"`
}

// PairSpec names one required connection in the solution
type PairSpec struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// VecSpec is a 2D cell coordinate or extent
type VecSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Options tune session behavior
type Options struct {
	Scatter bool  `yaml:"scatter"` // Randomize start positions at setup and on reset
	Seed    int64 `yaml:"seed"`    // Scatter seed; 0 = time-based
	TickMS  int   `yaml:"tick_ms"` // Session tick interval in milliseconds
}

// Vec converts the spec value to a geometry vector
func (v VecSpec) Vec() geom.Vec {
	return geom.Vec{X: v.X, Y: v.Y}
}

// Pair converts the spec value to a canonical id pair
func (p PairSpec) Pair() core.Pair {
	return core.NewPair(core.PartID(p.A), core.PartID(p.B))
}

// SolutionPairs returns the canonicalized solution set
func (p *Puzzle) SolutionPairs() []core.Pair {
	pairs := make([]core.Pair, 0, len(p.Solution))
	for _, s := range p.Solution {
		pairs = append(pairs, s.Pair())
	}
	return pairs
}
