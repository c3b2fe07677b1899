// Package config provides YAML-based scenario configuration, embedded
// defaults, presets and validation for the simulation.
package config

// Config contains everything needed to build a simulation run.
type Config struct {
	Name      string          `yaml:"name"`
	Title     string          `yaml:"title"`
	Domain    DomainConfig    `yaml:"domain"`
	Species   []SpeciesConfig `yaml:"species"`
	Couplings []CouplingPair  `yaml:"couplings"`
	Coupling  CouplingConfig  `yaml:"coupling"`
	Catalyst  CatalystConfig  `yaml:"catalyst"`
	Threshold ThresholdConfig `yaml:"threshold"`
	Depletion DepletionConfig `yaml:"depletion"`
	Economy   EconomyConfig   `yaml:"economy"`
	History   int             `yaml:"history"` // Samples kept by the history recorder
}

// Range is a closed interval sampled uniformly. Min == Max yields a constant.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Fixed returns a degenerate range holding v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// IsZero reports whether both ends are zero.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// DomainConfig defines the simulation box and kinematic integration.
type DomainConfig struct {
	Width              float64            `yaml:"width"`
	Height             float64            `yaml:"height"`
	DefaultTemperature float64            `yaml:"default_temperature"` // Fallback mean temperature for empty populations
	Epsilon            float64            `yaml:"epsilon"`             // Distance floor for inverse-square terms
	Softening          float64            `yaml:"softening"`           // Added to distance in kinematic forces
	ForceGain          float64            `yaml:"force_gain"`          // Force to velocity gain per tick
	Dt                 float64            `yaml:"dt"`
	ReferenceFrequency float64            `yaml:"reference_frequency"`
	KinematicWidth     float64            `yaml:"kinematic_width"` // Frequency span for kinematic compatibility
	ThermalField       ThermalFieldConfig `yaml:"thermal_field"`
}

// ThermalFieldConfig defines the ambient temperature variation applied at spawn.
type ThermalFieldConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Octaves   int     `yaml:"octaves"`
}

// SpeciesConfig is the data-driven description of one particle population.
type SpeciesConfig struct {
	Name              string  `yaml:"name"`
	Count             int     `yaml:"count"`
	Charge            Range   `yaml:"charge"`
	Mass              float64 `yaml:"mass"`
	Temperature       Range   `yaml:"temperature"`
	Speed             float64 `yaml:"speed"` // Velocity components uniform in [-speed, speed)
	Radius            Range   `yaml:"radius"`
	Resonance         Range   `yaml:"resonance"` // Zero range = non-resonant
	Reactivity        Range   `yaml:"reactivity"`
	DestructionRate   Range   `yaml:"destruction_rate"`
	Size              Range   `yaml:"size"`
	DepletionRate     float64 `yaml:"depletion_rate"` // Linear DU removed per particle per tick
	ForceScale        float64 `yaml:"force_scale"`
	HeatRate          float64 `yaml:"heat_rate"`
	Damping           float64 `yaml:"damping"`
	Restitution       float64 `yaml:"restitution"`
	Gravity           float64 `yaml:"gravity"`
	MaxAge            int     `yaml:"max_age"` // 0 = immortal
	Recycle           bool    `yaml:"recycle"`
	SettleProbability float64 `yaml:"settle_probability"`
	SettleGravity     float64 `yaml:"settle_gravity"`
	InjectionRate     float64 `yaml:"injection_rate"`
	MaxCount          int     `yaml:"max_count"` // 0 = unbounded
	Floor             float64 `yaml:"floor"`     // Species-specific concentration minimum
}

// CouplingPair names two species whose pairwise coupling is computed.
// Source particles provide the interaction radius and resonance.
type CouplingPair struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// CouplingConfig holds the pairwise coupling constants.
type CouplingConfig struct {
	ReferenceFrequency  float64 `yaml:"reference_frequency"`
	ResonanceWidth      float64 `yaml:"resonance_width"`
	ActivationThreshold float64 `yaml:"activation_threshold"`
	SpawnProbability    float64 `yaml:"spawn_probability"`
	SpawnSpeed          float64 `yaml:"spawn_speed"`
	DestructionScale    float64 `yaml:"destruction_scale"`
	LifetimeMin         int     `yaml:"lifetime_min"`
	LifetimeSpread      int     `yaml:"lifetime_spread"`
	PhotoScale          float64 `yaml:"photo_scale"`
	NonlinearityScale   float64 `yaml:"nonlinearity_scale"`
	Workers             int     `yaml:"workers"` // 0 = runtime default
}

// CatalystConfig limits the catalytic agent pool.
type CatalystConfig struct {
	MaxAgents int `yaml:"max_agents"` // 0 = unbounded
}

// ThresholdConfig holds the threshold table and amplification constants.
type ThresholdConfig struct {
	Table           []float64 `yaml:"table"`   // Strictly decreasing
	Regimes         []float64 `yaml:"regimes"` // Degraded, critical, cascade and collapse boundaries
	Band            float64   `yaml:"band"`
	BandWeight      float64   `yaml:"band_weight"`
	CascadeWeight   float64   `yaml:"cascade_weight"`
	BaseExponent    float64   `yaml:"base_exponent"` // Exponent at an in-band threshold
	ExponentScale   float64   `yaml:"exponent_scale"`
	CascadeBoundary float64   `yaml:"cascade_boundary"`
	CascadeDepth    float64   `yaml:"cascade_depth"`
	CascadeExponent float64   `yaml:"cascade_exponent"`
	RunawayBoundary float64   `yaml:"runaway_boundary"`
	RunawayFactor   float64   `yaml:"runaway_factor"`
	RunawayRisk     float64   `yaml:"runaway_risk"`
	RunawayExponent float64   `yaml:"runaway_exponent"`
}

// DepletionConfig holds the concentration update constants.
type DepletionConfig struct {
	Initial        float64 `yaml:"initial"`
	Floor          float64 `yaml:"floor"`
	EMScale        float64 `yaml:"em_scale"`
	EMExponent     float64 `yaml:"em_exponent"`
	EMWeight       float64 `yaml:"em_weight"`
	ThermoScale    float64 `yaml:"thermo_scale"`
	ThermoExponent float64 `yaml:"thermo_exponent"`
	ThermoWeight   float64 `yaml:"thermo_weight"`
	ResonanceScale float64 `yaml:"resonance_scale"`
	Regeneration   float64 `yaml:"regeneration"` // DU restored per tick; 0 keeps depletion monotone
}

// PowerLawTerm is weight * deficit^(exponent+offset) / divisor.
type PowerLawTerm struct {
	Weight         float64 `yaml:"weight"`
	Divisor        float64 `yaml:"divisor"`
	ExponentOffset float64 `yaml:"exponent_offset"`
}

// EconomyConfig holds the cost model constants.
type EconomyConfig struct {
	Baseline             float64          `yaml:"baseline"`
	MinExponent          float64          `yaml:"min_exponent"`
	ReferenceTemperature float64          `yaml:"reference_temperature"`
	OzoneDamage          PowerLawTerm     `yaml:"ozone_damage"`
	Agriculture          PowerLawTerm     `yaml:"agriculture"`
	Health               PowerLawTerm     `yaml:"health"`
	EMScale              float64          `yaml:"em_scale"`
	GeoScale             float64          `yaml:"geo_scale"`
	TempWeight           float64          `yaml:"temp_weight"`
	ClimateEMWeight      float64          `yaml:"climate_em_weight"`
	ClimateThermoWeight  float64          `yaml:"climate_thermo_weight"`
	SystemicWeight       float64          `yaml:"systemic_weight"`
	Ionosphere           IonosphereConfig `yaml:"ionosphere"`
}

// IonosphereConfig drives the navigation and radiative forcing categories.
// Species lists the populations counted as orbital debris; empty disables both.
type IonosphereConfig struct {
	Species          []string `yaml:"species"`
	DensityScale     float64  `yaml:"density_scale"`
	GPSWeight        float64  `yaml:"gps_weight"`
	CommWeight       float64  `yaml:"comm_weight"`
	AlbedoFactor     float64  `yaml:"albedo_factor"`
	AbsorptionFactor float64  `yaml:"absorption_factor"`
	ForcingWeight    float64  `yaml:"forcing_weight"`
}

// SpeciesIndex returns the index of the named species, or -1.
func (c *Config) SpeciesIndex(name string) int {
	for i, s := range c.Species {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// EffectiveFloor is the largest of the global and species floors.
func (c *Config) EffectiveFloor() float64 {
	floor := c.Depletion.Floor
	for _, s := range c.Species {
		if s.Floor > floor {
			floor = s.Floor
		}
	}
	return floor
}

// Clone returns a deep copy so presets can be applied without aliasing.
func (c Config) Clone() Config {
	out := c
	out.Species = append([]SpeciesConfig(nil), c.Species...)
	out.Couplings = append([]CouplingPair(nil), c.Couplings...)
	out.Threshold.Table = append([]float64(nil), c.Threshold.Table...)
	out.Threshold.Regimes = append([]float64(nil), c.Threshold.Regimes...)
	out.Economy.Ionosphere.Species = append([]string(nil), c.Economy.Ionosphere.Species...)
	return out
}
