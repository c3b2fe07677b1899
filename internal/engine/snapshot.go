package engine

import (
	"math"

	"github.com/vovakirdan/atmosim/internal/catalyst"
	"github.com/vovakirdan/atmosim/internal/economy"
	"github.com/vovakirdan/atmosim/internal/population"
)

// Snapshot is an immutable copy of the simulation after a tick. It shares no
// storage with the engine, so readers may keep it across ticks.
type Snapshot struct {
	Tick     uint64
	Scenario string
	Seed     int64

	State    State
	Coupling CouplingSummary
	Ledger   economy.Ledger
	// Sum of Ledger.Total over every tick since the last reset
	CumulativeCost float64

	Populations []PopulationSnapshot
	Agents      []catalyst.Agent

	// RNG state after the tick
	RNGState uint64
}

// PopulationSnapshot is one species' particles.
type PopulationSnapshot struct {
	Name      string
	Particles []population.Particle
}

// ParticleCount returns the number of particles across all species.
func (snap *Snapshot) ParticleCount() int {
	n := 0
	for _, p := range snap.Populations {
		n += len(p.Particles)
	}
	return n
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v float64) {
		h = h*31 + math.Float64bits(v)
	}

	mix(snap.State.Concentration)
	mix(snap.State.MeanTemperature)
	mix(snap.State.FieldStrength)
	mix(snap.State.Amplification)
	mix(snap.State.CascadeRisk)
	mix(snap.State.PowerLaw)
	h = h*31 + uint64(snap.State.Regime) //#nosec G115 -- hash computation

	mix(snap.Coupling.EM)
	mix(snap.Coupling.Thermo)
	mix(snap.Coupling.Geo)
	h = h*31 + uint64(snap.Coupling.Activations) //#nosec G115 -- hash computation
	mix(snap.Ledger.Total)
	mix(snap.CumulativeCost)

	for _, pop := range snap.Populations {
		h = h*31 + uint64(len(pop.Particles))
		for _, p := range pop.Particles {
			h = h*31 + p.ID
			mix(p.Pos.X)
			mix(p.Pos.Y)
			mix(p.Vel.X)
			mix(p.Vel.Y)
			mix(p.Temp)
		}
	}

	for _, a := range snap.Agents {
		mix(a.Pos.X)
		mix(a.Pos.Y)
		mix(a.DestructionRate)
		h = h*31 + uint64(a.Lifetime) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
