package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/core"
	"github.com/vovakirdan/atmosim/internal/threshold"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{TickRate: 30, Seed: seed, Workers: 2}
}

func newSim(t *testing.T, cfg config.Config, seed int64, opts ...Option) *Simulation {
	t.Helper()
	sim, err := New(cfg, runtimeConfig(seed), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sim
}

// isolatedConfig has two populations of ten particles at rest with
// symmetric charges and no reachable neighbours, so coupling is zero and
// depletion is driven by particle loading alone.
func isolatedConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Domain.Width = 10000
	cfg.Domain.Height = 10000
	for i := range cfg.Species {
		s := &cfg.Species[i]
		s.Count = 10
		s.Speed = 0
		s.Charge = config.Range{Min: -1, Max: 1}
		s.Radius = config.Fixed(0.5)
		s.DepletionRate = 0.01
	}
	return cfg
}

func TestSimulationDeterminism(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Coupling.SpawnProbability = 0.2

	sim1 := newSim(t, cfg, 12345)
	sim2 := newSim(t, cfg, 12345)

	for i := range 60 {
		s1 := sim1.Step()
		s2 := sim2.Step()
		if s1.Hash() != s2.Hash() {
			t.Fatalf("tick %d: hashes differ. Run1=%d, Run2=%d", i+1, s1.Hash(), s2.Hash())
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	cfg := config.DefaultConfig()
	s1 := newSim(t, cfg, 1).Step()
	s2 := newSim(t, cfg, 2).Step()
	if s1.Hash() == s2.Hash() {
		t.Error("different seeds produced identical snapshots")
	}
}

func TestResetReproducesRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Coupling.SpawnProbability = 0.2
	sim := newSim(t, cfg, 99)

	initial := sim.Snapshot()
	var first []uint64
	for range 30 {
		snap := sim.Step()
		first = append(first, snap.Hash())
	}

	sim.Reset()
	if got := sim.Snapshot(); got.Hash() != initial.Hash() {
		t.Fatal("Reset did not restore the initial snapshot")
	}
	for i := range 30 {
		snap := sim.Step()
		if snap.Hash() != first[i] {
			t.Fatalf("tick %d differs after reset", i+1)
		}
	}
}

func TestWorkerCountDoesNotChangeRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Coupling.SpawnProbability = 0.3

	var hashes [][]uint64
	for _, workers := range []int{1, 3, 16} {
		sim, err := New(cfg, core.RuntimeConfig{Seed: 7, Workers: workers})
		if err != nil {
			t.Fatal(err)
		}
		var run []uint64
		for range 25 {
			snap := sim.Step()
			run = append(run, snap.Hash())
		}
		hashes = append(hashes, run)
	}
	for w := 1; w < len(hashes); w++ {
		for i := range hashes[0] {
			if hashes[w][i] != hashes[0][i] {
				t.Fatalf("worker setting %d diverged at tick %d", w, i+1)
			}
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		code   string
	}{
		{"no species", func(c *config.Config) { c.Species = nil; c.Couplings = nil; c.Economy.Ionosphere.Species = nil }, "NO_SPECIES"},
		{"negative count", func(c *config.Config) { c.Species[0].Count = -1 }, "NEGATIVE_POPULATION"},
		{"non-monotonic thresholds", func(c *config.Config) { c.Threshold.Table = []float64{100, 200} }, "NON_MONOTONIC_THRESHOLDS"},
		{"unknown species", func(c *config.Config) { c.Couplings[0].Target = "ozone" }, "UNKNOWN_SPECIES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)
			sim, err := New(cfg, runtimeConfig(1))
			if err == nil {
				t.Fatal("expected error")
			}
			if sim != nil {
				t.Error("expected nil simulation on error")
			}
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			var ve config.ValidationError
			if !errors.As(err, &ve) || ve.Code != tt.code {
				t.Errorf("error = %v, expected code %s", err, tt.code)
			}
		})
	}
}

func TestConcentrationMonotoneAndFloored(t *testing.T) {
	for _, id := range []string{"coupling", "silica"} {
		t.Run(id, func(t *testing.T) {
			cfg, err := config.Load(id, "")
			if err != nil {
				t.Fatal(err)
			}
			cfg.Coupling.SpawnProbability = 0.2
			sim := newSim(t, cfg, 5)
			floor := sim.Floor()

			prev := sim.Snapshot().State
			for i := range 300 {
				state := sim.Step().State
				if state.Concentration > prev.Concentration {
					t.Fatalf("tick %d: concentration rose from %v to %v", i+1, prev.Concentration, state.Concentration)
				}
				if state.Concentration < floor {
					t.Fatalf("tick %d: concentration %v below floor %v", i+1, state.Concentration, floor)
				}
				if state.CascadeRisk < 0 || state.CascadeRisk > 1 {
					t.Fatalf("tick %d: cascade risk %v outside [0, 1]", i+1, state.CascadeRisk)
				}
				if state.Regime < prev.Regime {
					t.Fatalf("tick %d: regime recovered from %v to %v", i+1, prev.Regime, state.Regime)
				}
				prev = state
			}
		})
	}
}

func TestIsolatedPopulations(t *testing.T) {
	sim := newSim(t, isolatedConfig(), 42)

	prev := sim.Snapshot().State.Concentration
	if prev != 280 {
		t.Fatalf("initial concentration = %v, expected 280", prev)
	}
	for i := range 100 {
		snap := sim.Step()
		c := snap.State.Concentration
		if c >= prev {
			t.Fatalf("tick %d: concentration %v did not decrease from %v", i+1, c, prev)
		}
		if snap.Coupling.EM != 0 || snap.Coupling.Interactions != 0 {
			t.Fatalf("tick %d: isolated populations coupled: %+v", i+1, snap.Coupling)
		}
		if snap.State.CascadeRisk != 0 {
			t.Fatalf("tick %d: cascade risk %v without coupling", i+1, snap.State.CascadeRisk)
		}
		if snap.State.Amplification < 1 {
			t.Fatalf("tick %d: amplification %v below 1", i+1, snap.State.Amplification)
		}
		if len(snap.Agents) != 0 {
			t.Fatalf("tick %d: agents spawned without coupling", i+1)
		}
		prev = c
	}
}

// touchingConfig packs uncharged populations into a small box so every
// particle is within reach of the other species but no EM coupling arises.
func touchingConfig() config.Config {
	cfg := isolatedConfig()
	cfg.Domain.Width = 100
	cfg.Domain.Height = 100
	for i := range cfg.Species {
		s := &cfg.Species[i]
		s.Speed = 0.2
		s.Charge = config.Fixed(0)
		s.Radius = config.Fixed(40)
		s.HeatRate = 0.0001
		s.Temperature = config.Fixed(12 + 6*float64(i))
	}
	return cfg
}

func TestInteractingPopulationsWithoutCoupling(t *testing.T) {
	sim := newSim(t, touchingConfig(), 9)

	prev := sim.Snapshot().State.Concentration
	interactions := 0
	for i := range 150 {
		snap := sim.Step()
		st := snap.State
		interactions += snap.Coupling.Interactions

		if st.Concentration > prev {
			t.Fatalf("tick %d: concentration rose from %v to %v", i+1, prev, st.Concentration)
		}
		if snap.Coupling.EM != 0 {
			t.Fatalf("tick %d: uncharged populations produced EM coupling %v", i+1, snap.Coupling.EM)
		}
		if prev >= 260 && st.CascadeRisk != 0 {
			t.Fatalf("tick %d: cascade risk %v at %v DU without coupling", i+1, st.CascadeRisk, prev)
		}
		if len(snap.Agents) != 0 {
			t.Fatalf("tick %d: agents spawned without coupling", i+1)
		}
		prev = st.Concentration
	}
	if interactions == 0 {
		t.Fatal("populations never came within interaction radius")
	}
	if prev >= 280 {
		t.Errorf("concentration did not fall: %v", prev)
	}
}

func TestSetConcentration(t *testing.T) {
	sim := newSim(t, isolatedConfig(), 1)

	sim.SetConcentration(200)
	snap := sim.Step()
	if snap.State.Amplification <= 1 {
		t.Errorf("Amplification at 200 = %v, expected > 1", snap.State.Amplification)
	}
	if snap.State.Regime != threshold.RegimeCritical {
		t.Errorf("Regime = %v, expected critical", snap.State.Regime)
	}
	// 200 sits on the 220 and 180 band edges, so only the cascade depth counts.
	if want := 20.0 / 220 * 2; math.Abs(snap.State.PowerLaw-want) > 1e-12 {
		t.Errorf("PowerLaw = %v, expected %v", snap.State.PowerLaw, want)
	}

	sim.SetConcentration(218)
	if snap := sim.Step(); snap.State.Amplification <= 2 {
		t.Errorf("Amplification at 218 = %v, expected > 2", snap.State.Amplification)
	}

	sim.SetConcentration(-10)
	if got := sim.Snapshot().State.Concentration; got != sim.Floor() {
		t.Errorf("Concentration = %v, expected floor %v", got, sim.Floor())
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Coupling.SpawnProbability = 1
	sim := newSim(t, cfg, 3)
	for range 5 {
		sim.Step()
	}

	snap := sim.Snapshot()
	before := snap.Hash()
	if len(snap.Populations[0].Particles) == 0 {
		t.Fatal("expected particles")
	}
	snap.Populations[0].Particles[0].Pos.X = -1000
	if len(snap.Agents) > 0 {
		snap.Agents[0].Lifetime = -5
	}

	again := sim.Snapshot()
	if again.Hash() != before {
		t.Error("mutating a snapshot changed engine state")
	}
}

func TestCumulativeCost(t *testing.T) {
	sim := newSim(t, config.DefaultConfig(), 8)
	sum := 0.0
	for range 40 {
		snap := sim.Step()
		sum += snap.Ledger.Total
		if snap.CumulativeCost != sum {
			t.Fatalf("CumulativeCost = %v, expected %v", snap.CumulativeCost, sum)
		}
	}
	sim.Reset()
	if sim.Snapshot().CumulativeCost != 0 {
		t.Error("Reset did not clear cumulative cost")
	}
}

func TestObserversAndHistory(t *testing.T) {
	history := NewHistory(5)
	calls := 0
	sim := newSim(t, config.DefaultConfig(), 4,
		WithObserver(history),
		WithObserver(ObserverFunc(func(*Snapshot) { calls++ })),
	)

	var last Snapshot
	for range 12 {
		last = sim.Step()
	}
	if calls != 12 {
		t.Errorf("observer called %d times, expected 12", calls)
	}
	if history.Len() != 5 || history.Observed() != 12 {
		t.Fatalf("Len() = %d, Observed() = %d", history.Len(), history.Observed())
	}

	samples := history.Samples()
	for i, s := range samples {
		if want := uint64(8 + i); s.Tick != want {
			t.Errorf("sample %d tick = %d, expected %d", i, s.Tick, want)
		}
	}
	if history.MinConcentration() != last.State.Concentration {
		t.Errorf("MinConcentration() = %v, expected %v", history.MinConcentration(), last.State.Concentration)
	}
	if history.PeakAmplification() < 1 {
		t.Errorf("PeakAmplification() = %v", history.PeakAmplification())
	}

	history.Clear()
	if history.Len() != 0 || len(history.Samples()) != 0 {
		t.Error("Clear did not empty the history")
	}
}

func TestRun(t *testing.T) {
	sim := newSim(t, config.DefaultConfig(), 11)
	snap, err := sim.Run(context.Background(), 15)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if snap.Tick != 15 || sim.Tick() != 15 {
		t.Errorf("Tick = %d, expected 15", snap.Tick)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap, err = sim.Run(ctx, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if snap.Tick != 15 {
		t.Errorf("cancelled run advanced to tick %d", snap.Tick)
	}
}

func TestEmbeddedScenariosRun(t *testing.T) {
	for _, id := range config.EmbeddedScenarios() {
		t.Run(id, func(t *testing.T) {
			cfg, err := config.Load(id, "")
			if err != nil {
				t.Fatal(err)
			}
			sim := newSim(t, cfg, 2)
			snap, err := sim.Run(context.Background(), 20)
			if err != nil {
				t.Fatal(err)
			}
			if snap.Scenario != id {
				t.Errorf("Scenario = %q, expected %q", snap.Scenario, id)
			}
			if len(snap.Populations) != len(cfg.Species) {
				t.Errorf("Populations = %d, expected %d", len(snap.Populations), len(cfg.Species))
			}
			for _, cat := range snap.Ledger.Categories() {
				if cat.Value < 0 {
					t.Errorf("%s = %v, negative", cat.Name, cat.Value)
				}
			}
		})
	}
}
