package engine

import (
	"github.com/vovakirdan/atmosim/internal/coupling"
	"github.com/vovakirdan/atmosim/internal/threshold"
)

// State is the atmospheric state after a tick. It is a value and is
// replaced wholesale every tick.
type State struct {
	Concentration   float64 // Dobson units
	MeanTemperature float64
	FieldStrength   float64 // Summed electromagnetic coupling
	Amplification   float64
	CascadeRisk     float64
	PowerLaw        float64
	Regime          threshold.Regime // Worst regime reached this run
}

// CouplingSummary is the coupling result of a tick without the spawned agents.
type CouplingSummary struct {
	EM           float64
	Thermo       float64
	Photo        float64
	Geo          float64
	Nonlinearity float64
	Interactions int
	Activations  int
	Spawned      int
}

func summarize(r coupling.Result) CouplingSummary {
	return CouplingSummary{
		EM:           r.EM,
		Thermo:       r.Thermo,
		Photo:        r.Photo,
		Geo:          r.Geo,
		Nonlinearity: r.Nonlinearity,
		Interactions: r.Interactions,
		Activations:  r.Activations,
		Spawned:      len(r.Spawns),
	}
}
