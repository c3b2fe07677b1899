package population

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MeanTemperature returns the mean particle temperature, or fallback when
// the population is empty.
func (p Population) MeanTemperature(fallback float64) float64 {
	if len(p.Particles) == 0 {
		return fallback
	}
	temps := make([]float64, len(p.Particles))
	for i, q := range p.Particles {
		temps[i] = q.Temp
	}
	return stat.Mean(temps, nil)
}

// MeanAbsCharge returns the mean absolute charge, 0 when empty.
func (p Population) MeanAbsCharge() float64 {
	if len(p.Particles) == 0 {
		return 0
	}
	charges := make([]float64, len(p.Particles))
	for i, q := range p.Particles {
		charges[i] = math.Abs(q.Charge)
	}
	return stat.Mean(charges, nil)
}

// ScatteringArea returns the summed cross-section pi*size^2.
func (p Population) ScatteringArea() float64 {
	areas := make([]float64, len(p.Particles))
	for i, q := range p.Particles {
		areas[i] = math.Pi * q.Size * q.Size
	}
	return floats.Sum(areas)
}

// MeanTemperature averages the per-population means. Empty populations
// contribute fallback, and no populations at all yields fallback.
func MeanTemperature(pops []Population, fallback float64) float64 {
	if len(pops) == 0 {
		return fallback
	}
	means := make([]float64, len(pops))
	for i, p := range pops {
		means[i] = p.MeanTemperature(fallback)
	}
	return stat.Mean(means, nil)
}
