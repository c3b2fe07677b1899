package storage

import (
	"github.com/vovakirdan/atmosim/internal/engine"
)

// NewRun summarizes a finished run from its last snapshot and history.
// hist may be nil, in which case extrema come from the snapshot alone.
func NewRun(snap engine.Snapshot, hist *engine.History, preset string) Run {
	run := Run{
		Scenario:           snap.Scenario,
		Seed:               snap.Seed,
		Preset:             preset,
		Ticks:              int64(snap.Tick), //#nosec G115 -- tick counts fit in int64
		FinalConcentration: snap.State.Concentration,
		MinConcentration:   snap.State.Concentration,
		PeakRisk:           snap.State.CascadeRisk,
		PeakAmplification:  snap.State.Amplification,
		TotalCost:          snap.CumulativeCost,
		Regime:             snap.State.Regime.String(),
		Agents:             len(snap.Agents),
	}
	if hist != nil && hist.Observed() > 0 {
		run.MinConcentration = min(run.MinConcentration, hist.MinConcentration())
		run.PeakRisk = max(run.PeakRisk, hist.PeakRisk())
		run.PeakAmplification = max(run.PeakAmplification, hist.PeakAmplification())
	}
	return run
}

// NewSamples converts engine samples for storage.
func NewSamples(samples []engine.Sample) []Sample {
	out := make([]Sample, len(samples))
	for i, s := range samples {
		out[i] = Sample{
			Tick:          int64(s.Tick), //#nosec G115 -- tick counts fit in int64
			Concentration: s.Concentration,
			Amplification: s.Amplification,
			CascadeRisk:   s.CascadeRisk,
			PowerLaw:      s.PowerLaw,
			Cost:          s.Cost,
			Agents:        s.Agents,
			Regime:        s.Regime.String(),
		}
	}
	return out
}
