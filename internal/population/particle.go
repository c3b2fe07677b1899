// Package population holds particle populations and advances them one tick
// at a time. Every update reads frozen input populations and returns a new
// one, so callers can keep the previous tick as an immutable snapshot.
package population

import (
	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/core"
)

// Particle is a single charged aerosol particle.
type Particle struct {
	ID              uint64
	Species         int // Index into the run's species list
	Pos             core.Vec2
	Vel             core.Vec2
	Charge          float64
	Mass            float64
	Temp            float64
	Radius          float64 // Interaction radius
	Resonance       float64 // Resonance frequency; 0 means non-resonant
	Reactivity      float64
	DestructionRate float64
	Size            float64
	Age             int
	Settling        bool
}

// Resonant reports whether the particle carries a resonance frequency.
func (p Particle) Resonant() bool {
	return p.Resonance > 0
}

// Species is the immutable description a population is built from.
type Species struct {
	Index int
	config.SpeciesConfig
}

// NewSpecies wraps the configured species list with their indices.
func NewSpecies(cfgs []config.SpeciesConfig) []*Species {
	out := make([]*Species, len(cfgs))
	for i, c := range cfgs {
		out[i] = &Species{Index: i, SpeciesConfig: c}
	}
	return out
}

// Population is one species' particles at a given tick.
type Population struct {
	Species   *Species
	Particles []Particle
}

// Len returns the number of particles.
func (p Population) Len() int {
	return len(p.Particles)
}

// Clone returns a copy that shares no particle storage with p.
func (p Population) Clone() Population {
	return Population{
		Species:   p.Species,
		Particles: append([]Particle(nil), p.Particles...),
	}
}
