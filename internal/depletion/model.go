// Package depletion advances the ozone column concentration from
// particle loading, catalytic agents and coupling intensity.
package depletion

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vovakirdan/atmosim/internal/config"
	"github.com/vovakirdan/atmosim/internal/population"
)

// Inputs is everything one tick of depletion depends on.
type Inputs struct {
	Concentration float64
	Linear        float64 // Summed count * depletion rate over all species
	Potency       float64 // Summed destruction rate of live agents
	EM            float64
	Thermo        float64
	Geo           float64
	Amplification float64
}

// Model applies one tick of depletion.
type Model struct {
	cfg   config.DepletionConfig
	floor float64
}

// NewModel creates a depletion model clamped to floor.
func NewModel(cfg config.DepletionConfig, floor float64) *Model {
	return &Model{cfg: cfg, floor: floor}
}

// Floor returns the concentration floor.
func (m *Model) Floor() float64 {
	return m.floor
}

// Linear sums count * depletion rate over the given populations.
func Linear(pops []population.Population) float64 {
	terms := make([]float64, len(pops))
	for i, p := range pops {
		if p.Species == nil {
			continue
		}
		terms[i] = float64(p.Len()) * p.Species.DepletionRate
	}
	return floats.Sum(terms)
}

// Rate returns the total depletion for one tick before the floor is applied.
// Negative inputs count as zero.
func (m *Model) Rate(in Inputs) float64 {
	cfg := m.cfg
	em := nonNegative(in.EM)
	thermo := nonNegative(in.Thermo)
	geo := nonNegative(in.Geo)
	amplification := nonNegative(in.Amplification)

	base := floats.Sum([]float64{
		nonNegative(in.Linear),
		nonNegative(in.Potency),
		powerTerm(em, cfg.EMScale, cfg.EMExponent, cfg.EMWeight),
		powerTerm(thermo, cfg.ThermoScale, cfg.ThermoExponent, cfg.ThermoWeight),
	})

	resonance := 1.0
	if cfg.ResonanceScale > 0 {
		resonance += geo / cfg.ResonanceScale
	}
	return base * amplification * resonance
}

// Apply returns the next concentration, never below the floor.
func (m *Model) Apply(in Inputs) float64 {
	next := in.Concentration - m.Rate(in) + m.cfg.Regeneration
	return math.Max(m.floor, next)
}

func powerTerm(v, scale, exponent, weight float64) float64 {
	if scale <= 0 || v == 0 {
		return 0
	}
	return math.Pow(v/scale, exponent) * weight
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
