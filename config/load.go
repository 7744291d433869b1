// Package config loads puzzle definitions from YAML files.
//
// A puzzle file declares the parts (start position, body size, connector
// probes), the solution pairs, and session options. Identifier mistakes are
// configuration errors caught here at load time; the puzzle core never
// validates ids at runtime.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"snapfit/core"
)

const defaultTickMS = 50

// Load reads and validates a puzzle file, or returns the built-in default
// puzzle when path is empty
func Load(path string) (*Puzzle, error) {
	if path == "" {
		return DefaultPuzzle(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a puzzle file
func LoadFromPath(path string) (*Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read puzzle: %w", err)
	}

	var p Puzzle
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse puzzle: %w", err)
	}

	p.applyDefaults()

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("puzzle %q: %w", path, err)
	}
	return &p, nil
}

// applyDefaults fills in missing values with defaults
func (p *Puzzle) applyDefaults() {
	if p.Name == "" {
		p.Name = "untitled"
	}
	if p.Options.TickMS <= 0 {
		p.Options.TickMS = defaultTickMS
	}
	for i := range p.Parts {
		if p.Parts[i].Size.Vec().IsZero() {
			p.Parts[i].Size = VecSpec{X: 9, Y: 5}
		}
	}
}

// Validate checks the puzzle for configuration errors
func (p *Puzzle) Validate() error {
	if len(p.Parts) == 0 {
		return fmt.Errorf("no parts defined")
	}

	ids := make(map[string]struct{}, len(p.Parts))
	for _, ps := range p.Parts {
		if ps.ID == "" {
			return fmt.Errorf("part with empty id")
		}
		if _, dup := ids[ps.ID]; dup {
			return fmt.Errorf("duplicate part id %q", ps.ID)
		}
		ids[ps.ID] = struct{}{}

		if ps.Size.X <= 0 || ps.Size.Y <= 0 {
			return fmt.Errorf("part %q: size must be positive, got %dx%d", ps.ID, ps.Size.X, ps.Size.Y)
		}
		for i, pr := range ps.Probes {
			if pr.Half.X < 0 || pr.Half.Y < 0 {
				return fmt.Errorf("part %q probe %d: negative half-extent", ps.ID, i)
			}
		}
	}

	seen := make(map[core.Pair]struct{}, len(p.Solution))
	for _, s := range p.Solution {
		if s.A == s.B {
			return fmt.Errorf("solution pair links %q to itself", s.A)
		}
		if _, ok := ids[s.A]; !ok {
			return fmt.Errorf("solution references unknown part %q", s.A)
		}
		if _, ok := ids[s.B]; !ok {
			return fmt.Errorf("solution references unknown part %q", s.B)
		}
		pair := s.Pair()
		if _, dup := seen[pair]; dup {
			return fmt.Errorf("duplicate solution pair %s", pair)
		}
		seen[pair] = struct{}{}
	}
	return nil
}

// DefaultPuzzle returns the built-in gearbox puzzle
// Two horizontal couplings and one vertical, flush joins
func DefaultPuzzle() *Puzzle {
	return &Puzzle{
		Name: "gearbox",
		Parts: []PartSpec{
			{
				ID:    "frame",
				Start: VecSpec{X: 15, Y: 8},
				Size:  VecSpec{X: 9, Y: 5},
				Probes: []ProbeSpec{
					{Offset: VecSpec{X: 5, Y: 0}, Half: VecSpec{X: 1, Y: 1}},
				},
			},
			{
				ID:    "gear",
				Start: VecSpec{X: 40, Y: 6},
				Size:  VecSpec{X: 9, Y: 5},
				Probes: []ProbeSpec{
					{Offset: VecSpec{X: -4, Y: 0}, Half: VecSpec{X: 1, Y: 1}},
					{Offset: VecSpec{X: 5, Y: 0}, Half: VecSpec{X: 1, Y: 1}},
					{Offset: VecSpec{X: 0, Y: 3}, Half: VecSpec{X: 1, Y: 1}},
				},
			},
			{
				ID:    "axle",
				Start: VecSpec{X: 62, Y: 14},
				Size:  VecSpec{X: 9, Y: 5},
				Probes: []ProbeSpec{
					{Offset: VecSpec{X: -4, Y: 0}, Half: VecSpec{X: 1, Y: 1}},
				},
			},
			{
				ID:    "mount",
				Start: VecSpec{X: 20, Y: 18},
				Size:  VecSpec{X: 9, Y: 5},
				Probes: []ProbeSpec{
					{Offset: VecSpec{X: 0, Y: -2}, Half: VecSpec{X: 1, Y: 1}},
				},
			},
		},
		Solution: []PairSpec{
			{A: "frame", B: "gear"},
			{A: "gear", B: "axle"},
			{A: "gear", B: "mount"},
		},
		Options: Options{TickMS: defaultTickMS},
	}
}
