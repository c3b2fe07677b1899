package core

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// ThermalField is a seeded, smooth scalar field used to vary initial particle
// temperatures across the domain.
type ThermalField struct {
	noise     opensimplex.Noise
	amplitude float64
	frequency float64
	octaves   int
}

// NewThermalField creates a field with the given amplitude (degrees) and base
// spatial frequency. A zero amplitude yields a flat field.
func NewThermalField(seed int64, amplitude, frequency float64, octaves int) *ThermalField {
	if octaves < 1 {
		octaves = 1
	}
	return &ThermalField{
		noise:     opensimplex.NewNormalized(seed),
		amplitude: amplitude,
		frequency: frequency,
		octaves:   octaves,
	}
}

// Offset returns the temperature offset at p, in [-amplitude, amplitude].
func (f *ThermalField) Offset(p Vec2) float64 {
	if f == nil || f.amplitude == 0 {
		return 0
	}
	n := octaveNoise(f.noise, p.X, p.Y, f.octaves, f.frequency, 0.5)
	return (n*2 - 1) * f.amplitude
}

// octaveNoise layers several octaves of normalized noise into [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for range octaves {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
