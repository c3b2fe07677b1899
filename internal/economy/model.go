// Package economy converts atmospheric state into per-tick economic costs.
//
// Ozone, agricultural and health damage follow a power law in the ozone
// deficit below baseline, so costs stay at zero until the column drops
// below baseline and then grow superlinearly.
package economy

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vovakirdan/atmosim/internal/config"
)

// Inputs is the atmospheric state the cost model reads.
type Inputs struct {
	Concentration   float64
	PowerLaw        float64
	MeanTemperature float64
	EM              float64
	Thermo          float64
	Geo             float64
	CascadeRisk     float64
	DebrisCount     int     // Particles of the configured debris species
	ScatteringArea  float64 // Summed pi*size^2 of the debris species
}

// Ledger holds the cost of one tick per category.
type Ledger struct {
	OzoneDamage float64
	Agriculture float64
	Health      float64
	Climate     float64
	Navigation  float64
	Forcing     float64
	Systemic    float64
	Total       float64
}

// Category is one named ledger line.
type Category struct {
	Name  string
	Value float64
}

// Categories returns the ledger lines in display order, total excluded.
func (l Ledger) Categories() []Category {
	return []Category{
		{"Ozone damage", l.OzoneDamage},
		{"Agricultural loss", l.Agriculture},
		{"Health costs", l.Health},
		{"Climate disruption", l.Climate},
		{"Navigation disruption", l.Navigation},
		{"Climate forcing", l.Forcing},
		{"Systemic risk", l.Systemic},
	}
}

// Ionosphere is the derived ionospheric disturbance for a debris load.
type Ionosphere struct {
	Density     float64
	EMAmplifier float64
	Radio       float64
	GPS         float64 // In [0, 1]
	Comm        float64 // In [0, 1]
}

// Model computes economic impact.
type Model struct {
	cfg config.EconomyConfig
}

// NewModel creates a cost model.
func NewModel(cfg config.EconomyConfig) *Model {
	return &Model{cfg: cfg}
}

// Deficit returns the ozone deficit below baseline, never negative.
func (m *Model) Deficit(concentration float64) float64 {
	return math.Max(0, m.cfg.Baseline-concentration)
}

// Compute returns the cost ledger for one tick.
func (m *Model) Compute(in Inputs) Ledger {
	cfg := m.cfg
	deficit := m.Deficit(in.Concentration)
	exponent := math.Max(cfg.MinExponent, in.PowerLaw)

	multiplier := 1.0
	if cfg.EMScale > 0 {
		multiplier += in.EM / cfg.EMScale
	}
	if cfg.GeoScale > 0 {
		multiplier += in.Geo / cfg.GeoScale
	}

	var l Ledger
	l.OzoneDamage = powerLaw(cfg.OzoneDamage, deficit, exponent) * multiplier
	l.Agriculture = powerLaw(cfg.Agriculture, deficit, exponent) * multiplier
	l.Health = powerLaw(cfg.Health, deficit, exponent) * multiplier

	anomaly := math.Abs(in.MeanTemperature - cfg.ReferenceTemperature)
	l.Climate = (anomaly*cfg.TempWeight + in.EM*cfg.ClimateEMWeight + in.Thermo*cfg.ClimateThermoWeight) * multiplier

	if len(cfg.Ionosphere.Species) > 0 {
		iono := m.Ionosphere(in.DebrisCount)
		l.Navigation = (iono.GPS*cfg.Ionosphere.GPSWeight + iono.Comm*cfg.Ionosphere.CommWeight) * multiplier
		l.Forcing = math.Abs(m.RadiativeForcing(in.ScatteringArea)) * cfg.Ionosphere.ForcingWeight * multiplier
	}

	l.Systemic = in.CascadeRisk * cfg.SystemicWeight

	l.Total = floats.Sum([]float64{
		l.OzoneDamage, l.Agriculture, l.Health, l.Climate,
		l.Navigation, l.Forcing, l.Systemic,
	})
	return l
}

// Ionosphere derives the ionospheric disturbance caused by n debris particles.
func (m *Model) Ionosphere(n int) Ionosphere {
	scale := m.cfg.Ionosphere.DensityScale
	if scale <= 0 || n <= 0 {
		return Ionosphere{EMAmplifier: 1}
	}
	density := float64(n) / scale
	amp := 1 + math.Pow(density, 1.3)*2
	return Ionosphere{
		Density:     density,
		EMAmplifier: amp,
		Radio:       density * amp * 0.5,
		GPS:         math.Min(1, density*0.8),
		Comm:        math.Min(1, density*amp*0.3),
	}
}

// RadiativeForcing returns the net forcing of a scattering area. Negative
// values cool, positive values warm.
func (m *Model) RadiativeForcing(area float64) float64 {
	iono := m.cfg.Ionosphere
	return area * (iono.AbsorptionFactor - iono.AlbedoFactor)
}

func powerLaw(term config.PowerLawTerm, deficit, exponent float64) float64 {
	if deficit == 0 || term.Divisor == 0 {
		return 0
	}
	return term.Weight * math.Pow(deficit, exponent+term.ExponentOffset) / term.Divisor
}
