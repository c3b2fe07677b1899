package population

import (
	"math"

	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/core"
)

// Kinematics holds the domain-wide integration constants.
type Kinematics struct {
	Bounds             core.Bounds
	Epsilon            float64 // Distance floor
	Softening          float64 // Added to distance in force terms
	ForceGain          float64
	ReferenceFrequency float64
	KinematicWidth     float64
}

// KinematicsFromConfig builds Kinematics from the domain section.
func KinematicsFromConfig(d config.DomainConfig) Kinematics {
	return Kinematics{
		Bounds:             core.NewBounds(d.Width, d.Height),
		Epsilon:            d.Epsilon,
		Softening:          d.Softening,
		ForceGain:          d.ForceGain,
		ReferenceFrequency: d.ReferenceFrequency,
		KinematicWidth:     d.KinematicWidth,
	}
}

// Compatibility returns the frequency match factor in [0, 1] used to scale
// forces. Non-resonant particles are fully compatible.
func (k Kinematics) Compatibility(p Particle) float64 {
	if !p.Resonant() || k.KinematicWidth <= 0 {
		return 1
	}
	return core.ClampF(1-math.Abs(p.Resonance-k.ReferenceFrequency)/k.KinematicWidth, 0, 1)
}

// Update advances self by dt against the other populations.
// Inputs are read only; the returned population owns fresh storage.
//
// The update is two-phase: kinematics for every particle are computed from
// the frozen inputs first, then lifecycle rules (settling, expiry,
// recycling, injection, cap) are applied in particle order using the
// spawner's RNG.
func Update(self Population, others []Population, dt float64, k Kinematics, sp *Spawner) Population {
	next := make([]Particle, len(self.Particles))
	for i, p := range self.Particles {
		next[i] = integrate(p, self.Species, others, dt, k)
	}
	return Population{
		Species:   self.Species,
		Particles: lifecycle(next, self.Species, sp),
	}
}

// integrate applies pairwise forces, heat exchange, gravity, boundary
// reflection and damping to one particle.
func integrate(p Particle, sp *Species, others []Population, dt float64, k Kinematics) Particle {
	var force core.Vec2
	heat := 0.0
	compatP := k.Compatibility(p)

	for _, other := range others {
		for _, q := range other.Particles {
			if q.ID == p.ID {
				continue
			}

			delta := q.Pos.Sub(p.Pos)
			d := math.Max(delta.Len(), k.Epsilon)
			ds := d + k.Softening
			if ds >= p.Radius {
				continue
			}

			c := compatP * k.Compatibility(q)
			magnitude := p.Charge * q.Charge * c / (ds * ds) * sp.ForceScale
			// Like charges push apart, opposite charges pull together.
			force = force.Sub(delta.Scale(magnitude / d))

			tempDiff := q.Temp - p.Temp
			heat += tempDiff * tempDiff * sp.HeatRate * core.Sign(tempDiff)
		}
	}

	gravity := sp.Gravity
	if p.Settling {
		gravity += sp.SettleGravity
	}

	vel := p.Vel.Add(force.Scale(k.ForceGain * dt / p.Mass))
	vel.Y += gravity * dt
	pos := p.Pos.Add(vel.Scale(dt))
	pos, vel = k.Bounds.Reflect(pos, vel, sp.Restitution)

	p.Pos = pos
	p.Vel = vel.Scale(sp.Damping)
	p.Temp += heat
	p.Age++
	return p
}

// lifecycle handles settling, expiry, recycling, injection and the cap.
func lifecycle(particles []Particle, sp *Species, spawner *Spawner) []Particle {
	rng := spawner.RNG()
	bottom := spawner.Bounds().MaxY
	out := particles[:0]

	for _, p := range particles {
		if !p.Settling && rng.Chance(sp.SettleProbability) {
			p.Settling = true
		}

		expired := sp.MaxAge > 0 && p.Age >= sp.MaxAge
		settled := p.Settling && p.Pos.Y >= bottom
		if expired || settled {
			if sp.Recycle {
				out = append(out, spawner.Spawn(sp))
			}
			continue
		}
		out = append(out, p)
	}

	if rng.Chance(sp.InjectionRate) {
		out = append(out, spawner.Spawn(sp))
	}

	if sp.MaxCount > 0 && len(out) > sp.MaxCount {
		out = out[len(out)-sp.MaxCount:]
	}
	return out
}
