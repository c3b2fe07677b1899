package config

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultYAML returns the embedded default YAML for a scenario.
func DefaultYAML(id string) ([]byte, error) {
	data, err := defaultsFS.ReadFile("defaults/" + id + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("config: no embedded defaults for %q: %w", id, err)
	}
	return data, nil
}

// EmbeddedScenarios lists the scenario IDs that ship with embedded defaults.
func EmbeddedScenarios() []string {
	entries, err := fs.ReadDir(defaultsFS, "defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids
}

// DefaultThresholds is the reference threshold table in Dobson units.
func DefaultThresholds() []float64 {
	return []float64{280, 250, 220, 180, 150, 100}
}

// DefaultRegimeBoundaries returns the concentrations at or below which the
// degraded, critical, cascade and collapse regimes begin.
func DefaultRegimeBoundaries() []float64 {
	return []float64{250, 220, 180, 150}
}

// DefaultConfig returns the hardcoded aluminum/sulfur coupling scenario.
// Used when neither a config file nor the embedded YAML can be loaded.
func DefaultConfig() Config {
	return Config{
		Name:   "coupling",
		Title:  "Aluminum / Sulfur Coupling",
		Domain: DefaultDomain(),
		Species: []SpeciesConfig{
			DefaultAluminum(),
			DefaultSulfur(),
		},
		Couplings: []CouplingPair{
			{Source: "aluminum", Target: "sulfur"},
		},
		Coupling:  DefaultCoupling(),
		Catalyst:  CatalystConfig{MaxAgents: 0},
		Threshold: DefaultThreshold(),
		Depletion: DefaultDepletion(),
		Economy:   DefaultEconomy([]string{"aluminum"}),
		History:   100,
	}
}

// DefaultDomain returns the 800x400 reference box.
func DefaultDomain() DomainConfig {
	return DomainConfig{
		Width:              800,
		Height:             400,
		DefaultTemperature: 15,
		Epsilon:            1e-3,
		Softening:          1,
		ForceGain:          0.1,
		Dt:                 1,
		ReferenceFrequency: 100,
		KinematicWidth:     200,
	}
}

// DefaultAluminum returns the resonant aluminum population.
func DefaultAluminum() SpeciesConfig {
	return SpeciesConfig{
		Name:          "aluminum",
		Count:         40,
		Charge:        Range{Min: -1, Max: 1},
		Mass:          1,
		Temperature:   Range{Min: 15, Max: 18},
		Speed:         0.15,
		Radius:        Range{Min: 15, Max: 25},
		Resonance:     Range{Min: 50, Max: 250},
		Size:          Range{Min: 0.02, Max: 0.1},
		DepletionRate: 0.015,
		ForceScale:    0.15,
		HeatRate:      0.001,
		Damping:       0.98,
		Restitution:   0.7,
	}
}

// DefaultSulfur returns the reactive sulfur population.
func DefaultSulfur() SpeciesConfig {
	return SpeciesConfig{
		Name:            "sulfur",
		Count:           50,
		Charge:          Range{Min: -0.75, Max: 0.75},
		Mass:            0.8,
		Temperature:     Range{Min: 15, Max: 18},
		Speed:           0.2,
		Radius:          Fixed(25),
		Reactivity:      Range{Min: 0, Max: 1},
		DestructionRate: Range{Min: 0.02, Max: 0.05},
		DepletionRate:   0.025,
		ForceScale:      0.12,
		HeatRate:        0.0008,
		Damping:         0.98,
		Restitution:     0.7,
	}
}

// DefaultCoupling returns the reference coupling constants.
func DefaultCoupling() CouplingConfig {
	return CouplingConfig{
		ReferenceFrequency:  100,
		ResonanceWidth:      50,
		ActivationThreshold: 0.1,
		SpawnProbability:    0.02,
		SpawnSpeed:          0.25,
		DestructionScale:    10,
		LifetimeMin:         100,
		LifetimeSpread:      200,
		PhotoScale:          0.1,
		NonlinearityScale:   50,
	}
}

// DefaultThreshold returns the reference amplification constants.
func DefaultThreshold() ThresholdConfig {
	return ThresholdConfig{
		Table:           DefaultThresholds(),
		Regimes:         DefaultRegimeBoundaries(),
		Band:            20,
		BandWeight:      2,
		CascadeWeight:   0.1,
		BaseExponent:    1.5,
		ExponentScale:   50,
		CascadeBoundary: 220,
		CascadeDepth:    5,
		CascadeExponent: 2,
		RunawayBoundary: 150,
		RunawayFactor:   3,
		RunawayRisk:     0.5,
		RunawayExponent: 1,
	}
}

// DefaultDepletion returns the reference depletion constants.
func DefaultDepletion() DepletionConfig {
	return DepletionConfig{
		Initial:        280,
		Floor:          50,
		EMScale:        100,
		EMExponent:     1.5,
		EMWeight:       2,
		ThermoScale:    50,
		ThermoExponent: 1.3,
		ThermoWeight:   1.5,
		ResonanceScale: 20,
	}
}

// DefaultEconomy returns the reference cost model. debris names the species
// counted for navigation disruption and radiative forcing.
func DefaultEconomy(debris []string) EconomyConfig {
	return EconomyConfig{
		Baseline:             280,
		MinExponent:          1.5,
		ReferenceTemperature: 15,
		OzoneDamage:          PowerLawTerm{Weight: 0.5, Divisor: 10},
		Agriculture:          PowerLawTerm{Weight: 0.8, Divisor: 8, ExponentOffset: 0.2},
		Health:               PowerLawTerm{Weight: 0.6, Divisor: 9, ExponentOffset: 0.1},
		EMScale:              50,
		GeoScale:             30,
		TempWeight:           2,
		ClimateEMWeight:      0.5,
		ClimateThermoWeight:  0.3,
		SystemicWeight:       50,
		Ionosphere: IonosphereConfig{
			Species:          debris,
			DensityScale:     1000,
			GPSWeight:        15,
			CommWeight:       8,
			AlbedoFactor:     0.001,
			AbsorptionFactor: 0.0008,
			ForcingWeight:    20,
		},
	}
}
