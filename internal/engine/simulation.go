// Package engine drives the simulation clock: it owns the run state and
// advances every component once per tick in a fixed order, producing an
// immutable Snapshot per tick.
//
// A tick reads only the frozen state of the previous tick and swaps the
// new state in at the end of Step, so readers never observe a partial tick.
// All randomness flows from a single seeded generator, consumed first by
// the population updates in species order and then by coupling spawn
// gating in pair order. The same config and seed always give the same
// sequence of snapshots.
package engine

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/atmosim/internal/catalyst"
	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/core"
	"github.com/vovakirdan/atmosim/internal/coupling"
	"github.com/vovakirdan/atmosim/internal/depletion"
	"github.com/vovakirdan/atmosim/internal/economy"
	"github.com/vovakirdan/atmosim/internal/population"
	"github.com/vovakirdan/atmosim/internal/threshold"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers an observer notified after every Step.
func WithObserver(o Observer) Option {
	return func(s *Simulation) {
		s.observers = append(s.observers, o)
	}
}

// pair is a resolved source/target coupling.
type pair struct {
	src, dst int
}

// Simulation is a single deterministic run. It is not safe for concurrent
// use; front ends read Snapshots instead.
type Simulation struct {
	cfg       config.Config
	runtime   core.RuntimeConfig
	logger    *log.Logger
	observers []Observer

	// Built once from config
	species    []*population.Species
	kinematics population.Kinematics
	pairs      []pair
	debris     []int
	calc       *coupling.Calculator
	amplifier  *threshold.Amplifier
	depletion  *depletion.Model
	economy    *economy.Model

	// Run state, replaced every tick
	rng        *core.SimpleRNG
	spawner    *population.Spawner
	tick       uint64
	pops       []population.Population
	pool       catalyst.Pool
	state      State
	coupling   CouplingSummary
	ledger     economy.Ledger
	cumulative float64
}

// New validates cfg and builds a simulation seeded from rc.Seed.
func New(cfg config.Config, rc core.RuntimeConfig, opts ...Option) (*Simulation, error) {
	cfg = cfg.Clone()
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}

	amplifier, err := threshold.NewAmplifier(cfg.Threshold)
	if err != nil {
		return nil, err
	}

	workers := rc.Workers
	if workers <= 0 {
		workers = cfg.Coupling.Workers
	}

	s := &Simulation{
		cfg:        cfg,
		runtime:    rc,
		logger:     log.New(io.Discard),
		species:    population.NewSpecies(cfg.Species),
		kinematics: population.KinematicsFromConfig(cfg.Domain),
		calc:       coupling.NewCalculator(cfg.Coupling, cfg.Domain.Epsilon, workers),
		amplifier:  amplifier,
		depletion:  depletion.NewModel(cfg.Depletion, cfg.EffectiveFloor()),
		economy:    economy.NewModel(cfg.Economy),
	}
	for _, c := range cfg.Couplings {
		s.pairs = append(s.pairs, pair{src: cfg.SpeciesIndex(c.Source), dst: cfg.SpeciesIndex(c.Target)})
	}
	for _, name := range cfg.Economy.Ionosphere.Species {
		s.debris = append(s.debris, cfg.SpeciesIndex(name))
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Reset()
	s.logger.Debug("simulation created",
		"scenario", cfg.Name,
		"seed", rc.Seed,
		"species", len(s.species),
		"pairs", len(s.pairs))
	return s, nil
}

// Config returns a copy of the validated config.
func (s *Simulation) Config() config.Config {
	return s.cfg.Clone()
}

// Runtime returns the runtime settings.
func (s *Simulation) Runtime() core.RuntimeConfig {
	return s.runtime
}

// Tick returns the number of completed ticks since the last reset.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Floor returns the effective concentration floor.
func (s *Simulation) Floor() float64 {
	return s.depletion.Floor()
}

// Reset reinitializes populations and scalar state from the config and seed.
func (s *Simulation) Reset() {
	s.rng = core.NewSimpleRNG(s.runtime.Seed)
	tf := s.cfg.Domain.ThermalField
	field := core.NewThermalField(s.runtime.Seed, tf.Amplitude, tf.Frequency, tf.Octaves)
	s.spawner = population.NewSpawner(s.rng, s.kinematics.Bounds, field)

	s.pops = make([]population.Population, len(s.species))
	for i, sp := range s.species {
		s.pops[i] = s.spawner.New(sp)
	}

	s.tick = 0
	s.pool = catalyst.NewPool(s.cfg.Catalyst.MaxAgents)
	s.coupling = CouplingSummary{}
	s.ledger = economy.Ledger{}
	s.cumulative = 0

	initial := math.Max(s.cfg.Depletion.Initial, s.Floor())
	s.state = State{
		Concentration:   initial,
		MeanTemperature: population.MeanTemperature(s.pops, s.cfg.Domain.DefaultTemperature),
		Amplification:   1,
		Regime:          s.amplifier.Regime(initial),
	}
}

// SetConcentration overrides the current concentration, clamped to the floor.
// It is meant for test harnesses and what-if runs.
func (s *Simulation) SetConcentration(v float64) {
	s.state.Concentration = math.Max(v, s.Floor())
}

// Step advances the simulation by one tick and returns its snapshot.
func (s *Simulation) Step() Snapshot {
	frozen := s.pops
	dt := s.cfg.Domain.Dt

	// Populations, in species order.
	next := make([]population.Population, len(frozen))
	for i := range frozen {
		next[i] = population.Update(frozen[i], others(frozen, i), dt, s.kinematics, s.spawner)
	}

	// Coupling, in pair order.
	var total coupling.Result
	for _, p := range s.pairs {
		total = total.Merge(s.calc.Compute(frozen[p.src], frozen[p.dst], s.rng))
	}
	if n := len(total.Spawns); n > 0 {
		s.logger.Debug("catalytic agents spawned", "tick", s.tick+1, "count", n)
	}

	pool := s.pool.Advance(total.Spawns)

	amp := s.amplifier.Compute(s.state.Concentration, total.EM)

	concentration := s.depletion.Apply(depletion.Inputs{
		Concentration: s.state.Concentration,
		Linear:        depletion.Linear(frozen),
		Potency:       pool.Potency(),
		EM:            total.EM,
		Thermo:        total.Thermo,
		Geo:           total.Geo,
		Amplification: amp.Amplification,
	})

	meanTemp := population.MeanTemperature(frozen, s.cfg.Domain.DefaultTemperature)
	debrisCount, area := s.debrisLoad(frozen)
	ledger := s.economy.Compute(economy.Inputs{
		Concentration:   concentration,
		PowerLaw:        amp.PowerLaw,
		MeanTemperature: meanTemp,
		EM:              total.EM,
		Thermo:          total.Thermo,
		Geo:             total.Geo,
		CascadeRisk:     amp.CascadeRisk,
		DebrisCount:     debrisCount,
		ScatteringArea:  area,
	})

	regime := s.state.Regime.Escalate(s.amplifier.Regime(concentration))
	if regime != s.state.Regime {
		s.logger.Info("regime changed",
			"tick", s.tick+1,
			"from", s.state.Regime,
			"to", regime,
			"concentration", fmt.Sprintf("%.2f", concentration))
	}

	// Commit.
	s.pops = next
	s.pool = pool
	s.tick++
	s.coupling = summarize(total)
	s.ledger = ledger
	s.cumulative += ledger.Total
	s.state = State{
		Concentration:   concentration,
		MeanTemperature: meanTemp,
		FieldStrength:   total.EM,
		Amplification:   amp.Amplification,
		CascadeRisk:     amp.CascadeRisk,
		PowerLaw:        amp.PowerLaw,
		Regime:          regime,
	}

	snap := s.Snapshot()
	for _, o := range s.observers {
		o.Observe(&snap)
	}
	return snap
}

// Run steps the simulation until ticks have elapsed or ctx is done,
// returning the last snapshot. ticks <= 0 runs until ctx is done.
func (s *Simulation) Run(ctx context.Context, ticks int) (Snapshot, error) {
	snap := s.Snapshot()
	for i := 0; ticks <= 0 || i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		snap = s.Step()
	}
	return snap, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	pops := make([]PopulationSnapshot, len(s.pops))
	for i, p := range s.pops {
		pops[i] = PopulationSnapshot{
			Name:      s.species[i].Name,
			Particles: p.Clone().Particles,
		}
	}
	return Snapshot{
		Tick:           s.tick,
		Scenario:       s.cfg.Name,
		Seed:           s.runtime.Seed,
		State:          s.state,
		Coupling:       s.coupling,
		Ledger:         s.ledger,
		CumulativeCost: s.cumulative,
		Populations:    pops,
		Agents:         s.pool.Clone().Agents,
		RNGState:       s.rng.State(),
	}
}

// debrisLoad counts debris particles and their scattering area.
func (s *Simulation) debrisLoad(pops []population.Population) (int, float64) {
	count := 0
	area := 0.0
	for _, i := range s.debris {
		count += pops[i].Len()
		area += pops[i].ScatteringArea()
	}
	return count, area
}

// others returns every population except the i-th. Particles do not
// interact with their own species.
func others(pops []population.Population, i int) []population.Population {
	out := make([]population.Population, 0, len(pops)-1)
	out = append(out, pops[:i]...)
	return append(out, pops[i+1:]...)
}
