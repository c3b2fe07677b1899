// Package coupling computes pairwise electromagnetic, thermodynamic,
// photochemical and geometric coupling between two particle populations.
//
// The O(N*M) pair pass is split by rows of the source population across
// worker goroutines. Each row writes only its own slot and the slots are
// reduced in row order, so results do not depend on the worker count.
// The only stochastic branch, catalytic agent spawning, runs afterwards
// on a single goroutine in row order.
package coupling

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/vovakirdan/atmosim/internal/catalyst"
	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/core"
	"github.com/vovakirdan/atmosim/internal/population"
)

// Result aggregates one tick of coupling between populations.
type Result struct {
	EM           float64 // Summed |electromagnetic| term
	Thermo       float64
	Photo        float64
	Geo          float64
	Nonlinearity float64
	Interactions int // Pairs within interaction radius
	Activations  int // Pairs above the activation threshold
	Spawns       []catalyst.Agent
}

// Merge adds o into r. Spawns keep r's order followed by o's.
func (r Result) Merge(o Result) Result {
	r.EM += o.EM
	r.Thermo += o.Thermo
	r.Photo += o.Photo
	r.Geo += o.Geo
	r.Nonlinearity += o.Nonlinearity
	r.Interactions += o.Interactions
	r.Activations += o.Activations
	r.Spawns = append(append([]catalyst.Agent(nil), r.Spawns...), o.Spawns...)
	return r
}

// Calculator computes coupling between a source and a target population.
type Calculator struct {
	cfg     config.CouplingConfig
	epsilon float64
	workers int
}

// NewCalculator creates a calculator. workers <= 0 uses one worker per CPU.
func NewCalculator(cfg config.CouplingConfig, epsilon float64, workers int) *Calculator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Calculator{cfg: cfg, epsilon: epsilon, workers: workers}
}

// activation is a pair whose electromagnetic term crossed the threshold.
type activation struct {
	pos core.Vec2
	em  float64
}

// row holds the partial sums for one source particle.
type row struct {
	em, thermo, geo float64
	interactions    int
	activations     []activation
}

// Compute couples every source particle with every target particle.
// Neither population is modified. rng is drawn once per activation, in
// source-then-target order.
func (c *Calculator) Compute(src, dst population.Population, rng *core.SimpleRNG) Result {
	rows := make([]row, len(src.Particles))

	workers := min(c.workers, len(rows))
	if workers <= 1 {
		for i := range rows {
			rows[i] = c.computeRow(src.Particles[i], dst.Particles)
		}
	} else {
		chunk := (len(rows) + workers - 1) / workers
		var wg sync.WaitGroup
		for start := 0; start < len(rows); start += chunk {
			end := min(start+chunk, len(rows))
			wg.Go(func() {
				for i := start; i < end; i++ {
					rows[i] = c.computeRow(src.Particles[i], dst.Particles)
				}
			})
		}
		wg.Wait()
	}

	em := make([]float64, len(rows))
	thermo := make([]float64, len(rows))
	geo := make([]float64, len(rows))
	var res Result
	for i, r := range rows {
		em[i] = r.em
		thermo[i] = r.thermo
		geo[i] = r.geo
		res.Interactions += r.interactions
		res.Activations += len(r.activations)
	}
	res.EM = floats.Sum(em)
	res.Thermo = floats.Sum(thermo)
	res.Geo = floats.Sum(geo)
	res.Photo = src.MeanAbsCharge() * res.EM * c.cfg.PhotoScale
	if c.cfg.NonlinearityScale > 0 {
		res.Nonlinearity = (res.EM + res.Geo) / c.cfg.NonlinearityScale
	}

	for _, r := range rows {
		for _, act := range r.activations {
			if !rng.Chance(c.cfg.SpawnProbability) {
				continue
			}
			res.Spawns = append(res.Spawns, c.spawn(act, rng))
		}
	}
	return res
}

// computeRow couples one source particle with all targets.
func (c *Calculator) computeRow(a population.Particle, targets []population.Particle) row {
	var r row
	resonance := c.Resonance(a)

	for _, b := range targets {
		delta := b.Pos.Sub(a.Pos)
		d := math.Max(delta.Len(), c.epsilon)
		if d >= a.Radius {
			continue
		}
		r.interactions++

		em := a.Charge * b.Charge * resonance / (d * d)
		r.em += math.Abs(em)

		tempDiff := a.Temp - b.Temp
		r.thermo += tempDiff * tempDiff / (d + 1)

		angle := math.Atan2(delta.Y, delta.X)
		r.geo += math.Abs(math.Sin(3*angle)) * math.Abs(em)

		if em > c.cfg.ActivationThreshold {
			r.activations = append(r.activations, activation{pos: a.Pos.Midpoint(b.Pos), em: em})
		}
	}
	return r
}

// Resonance returns the frequency resonance factor for a source particle,
// 1 on the reference frequency and falling off with distance from it.
func (c *Calculator) Resonance(p population.Particle) float64 {
	if !p.Resonant() {
		return 1
	}
	return 1 / (1 + math.Abs(p.Resonance-c.cfg.ReferenceFrequency)/c.cfg.ResonanceWidth)
}

// spawn creates an agent for an activation that passed the spawn roll.
func (c *Calculator) spawn(act activation, rng *core.SimpleRNG) catalyst.Agent {
	vel := core.Vec2{
		X: rng.Symmetric(c.cfg.SpawnSpeed),
		Y: rng.Symmetric(c.cfg.SpawnSpeed),
	}
	lifetime := c.cfg.LifetimeMin
	if c.cfg.LifetimeSpread > 0 {
		lifetime += rng.Intn(c.cfg.LifetimeSpread)
	}
	return catalyst.Agent{
		Pos:             act.pos,
		Vel:             vel,
		DestructionRate: act.em * c.cfg.DestructionScale,
		Lifetime:        lifetime,
	}
}
