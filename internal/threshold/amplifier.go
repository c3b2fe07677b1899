package threshold

import (
	"math"

	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/core"
)

// Result is the amplifier output for one tick.
type Result struct {
	Amplification float64
	CascadeRisk   float64 // In [0, 1]
	PowerLaw      float64
}

// Amplifier computes threshold amplification. It is pure: the same inputs
// always give the same Result.
type Amplifier struct {
	table   Table
	regimes RegimeMap
	cfg     config.ThresholdConfig
}

// NewAmplifier creates an amplifier from config.
func NewAmplifier(cfg config.ThresholdConfig) (*Amplifier, error) {
	table, err := NewTable(cfg.Table)
	if err != nil {
		return nil, err
	}
	regimes, err := NewRegimeMap(cfg.Regimes)
	if err != nil {
		return nil, err
	}
	return &Amplifier{table: table, regimes: regimes, cfg: cfg}, nil
}

// Table returns the threshold table.
func (a *Amplifier) Table() Table {
	return a.table
}

// Regime returns the regime for a concentration.
func (a *Amplifier) Regime(concentration float64) Regime {
	return a.regimes.Regime(concentration)
}

// Compute evaluates amplification for a concentration and total
// electromagnetic coupling strength.
//
// Thresholds are visited in descending order. Each threshold within the
// proximity band adds a quadratic amplification term and a cascade term
// proportional to coupling. The power-law exponent starts at 0 and is set
// by the last (lowest) in-band threshold the concentration is below. Two
// secondary boundaries then apply cascade-depth and runaway multipliers.
func (a *Amplifier) Compute(concentration, coupling float64) Result {
	cfg := a.cfg
	coupling = math.Max(coupling, 0)

	res := Result{Amplification: 1}

	for _, t := range a.table.values {
		dist := math.Abs(concentration - t)
		if dist < cfg.Band {
			proximity := (cfg.Band - dist) / cfg.Band
			res.Amplification += proximity * proximity * cfg.BandWeight
			res.CascadeRisk += proximity * coupling * cfg.CascadeWeight
			if concentration < t && cfg.ExponentScale > 0 {
				res.PowerLaw = cfg.BaseExponent + (t-concentration)/cfg.ExponentScale
			}
		}
	}

	if concentration < cfg.CascadeBoundary && cfg.CascadeBoundary > 0 {
		depth := (cfg.CascadeBoundary - concentration) / cfg.CascadeBoundary
		res.Amplification *= 1 + depth*depth*cfg.CascadeDepth
		res.PowerLaw += depth * cfg.CascadeExponent
	}

	if concentration < cfg.RunawayBoundary {
		res.Amplification *= cfg.RunawayFactor
		res.CascadeRisk += cfg.RunawayRisk
		res.PowerLaw += cfg.RunawayExponent
	}

	res.CascadeRisk = core.ClampF(res.CascadeRisk, 0, 1)
	return res
}
