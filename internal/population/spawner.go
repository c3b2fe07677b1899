package population

import (
	"github.com/vovakirdan/atmosim/internal/core"
)

// Spawner draws fresh particles from a species description. All draws go
// through the shared run RNG in a fixed order.
type Spawner struct {
	rng    *core.SimpleRNG
	bounds core.Bounds
	field  *core.ThermalField
	nextID uint64
}

// NewSpawner creates a spawner. field may be nil for a uniform temperature.
func NewSpawner(rng *core.SimpleRNG, bounds core.Bounds, field *core.ThermalField) *Spawner {
	return &Spawner{
		rng:    rng,
		bounds: bounds,
		field:  field,
		nextID: 1,
	}
}

// RNG exposes the shared generator for lifecycle decisions.
func (s *Spawner) RNG() *core.SimpleRNG {
	return s.rng
}

// Bounds returns the domain the spawner places particles in.
func (s *Spawner) Bounds() core.Bounds {
	return s.bounds
}

// Spawn creates one particle with a fresh ID and age 0.
func (s *Spawner) Spawn(sp *Species) Particle {
	r := s.rng
	pos := core.Vec2{
		X: r.Range(s.bounds.MinX, s.bounds.MaxX),
		Y: r.Range(s.bounds.MinY, s.bounds.MaxY),
	}
	vel := core.Vec2{
		X: r.Symmetric(sp.Speed),
		Y: r.Symmetric(sp.Speed),
	}

	p := Particle{
		ID:              s.nextID,
		Species:         sp.Index,
		Pos:             pos,
		Vel:             vel,
		Charge:          r.Range(sp.Charge.Min, sp.Charge.Max),
		Mass:            sp.Mass,
		Temp:            r.Range(sp.Temperature.Min, sp.Temperature.Max) + s.field.Offset(pos),
		Radius:          r.Range(sp.Radius.Min, sp.Radius.Max),
		Resonance:       r.Range(sp.Resonance.Min, sp.Resonance.Max),
		Reactivity:      r.Range(sp.Reactivity.Min, sp.Reactivity.Max),
		DestructionRate: r.Range(sp.DestructionRate.Min, sp.DestructionRate.Max),
		Size:            r.Range(sp.Size.Min, sp.Size.Max),
	}
	s.nextID++
	return p
}

// New builds the initial population for a species.
func (s *Spawner) New(sp *Species) Population {
	particles := make([]Particle, 0, sp.Count)
	for range sp.Count {
		particles = append(particles, s.Spawn(sp))
	}
	return Population{Species: sp, Particles: particles}
}
