package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every ValidationError via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is lets callers test for ErrInvalidConfig.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Validate checks a config before a run is built.
// Checks:
//   - at least one species, all names unique
//   - populations and caps non-negative, ranges ordered
//   - damping in (0, 1), probabilities in [0, 1]
//   - couplings and debris lists name known species
//   - threshold table and regime boundaries strictly decreasing
//   - floors and initial concentration consistent
func Validate(cfg *Config) error {
	if err := validateDomain(cfg); err != nil {
		return err
	}
	if err := validateSpecies(cfg); err != nil {
		return err
	}
	if err := validateCouplings(cfg); err != nil {
		return err
	}
	if err := ValidateThresholds(cfg.Threshold.Table); err != nil {
		return err
	}
	if err := ValidateRegimes(cfg.Threshold.Regimes); err != nil {
		return err
	}
	return validateDepletion(cfg)
}

func validateDomain(cfg *Config) error {
	d := cfg.Domain
	if d.Width <= 0 || d.Height <= 0 {
		return ValidationError{
			Code:    "INVALID_BOUNDS",
			Message: fmt.Sprintf("domain must have positive size, got %gx%g", d.Width, d.Height),
		}
	}
	if d.Epsilon <= 0 {
		return ValidationError{
			Code:    "INVALID_RANGE",
			Message: fmt.Sprintf("domain epsilon must be positive, got %g", d.Epsilon),
		}
	}
	if d.Dt <= 0 {
		return ValidationError{
			Code:    "INVALID_RANGE",
			Message: fmt.Sprintf("domain dt must be positive, got %g", d.Dt),
		}
	}
	return nil
}

func validateSpecies(cfg *Config) error {
	if len(cfg.Species) == 0 {
		return ValidationError{Code: "NO_SPECIES", Message: "at least one species is required"}
	}

	seen := make(map[string]bool, len(cfg.Species))
	for _, s := range cfg.Species {
		if s.Name == "" {
			return ValidationError{Code: "UNKNOWN_SPECIES", Message: "species name is empty"}
		}
		if seen[s.Name] {
			return ValidationError{
				Code:    "UNKNOWN_SPECIES",
				Message: fmt.Sprintf("species %q declared twice", s.Name),
			}
		}
		seen[s.Name] = true

		if s.Count < 0 || s.MaxCount < 0 || s.MaxAge < 0 {
			return ValidationError{
				Code:    "NEGATIVE_POPULATION",
				Message: fmt.Sprintf("species %q: count %d, max_count %d, max_age %d", s.Name, s.Count, s.MaxCount, s.MaxAge),
			}
		}
		if s.Mass <= 0 {
			return ValidationError{
				Code:    "INVALID_RANGE",
				Message: fmt.Sprintf("species %q: mass must be positive, got %g", s.Name, s.Mass),
			}
		}
		if s.Damping <= 0 || s.Damping >= 1 {
			return ValidationError{
				Code:    "INVALID_DAMPING",
				Message: fmt.Sprintf("species %q: damping must be in (0, 1), got %g", s.Name, s.Damping),
			}
		}
		if s.Restitution < 0 || s.Restitution > 1 {
			return ValidationError{
				Code:    "INVALID_DAMPING",
				Message: fmt.Sprintf("species %q: restitution must be in [0, 1], got %g", s.Name, s.Restitution),
			}
		}
		for _, p := range []float64{s.SettleProbability, s.InjectionRate} {
			if p < 0 || p > 1 {
				return ValidationError{
					Code:    "INVALID_PROBABILITY",
					Message: fmt.Sprintf("species %q: probability %g outside [0, 1]", s.Name, p),
				}
			}
		}

		ranges := []struct {
			name string
			r    Range
		}{
			{"charge", s.Charge},
			{"temperature", s.Temperature},
			{"radius", s.Radius},
			{"resonance", s.Resonance},
			{"reactivity", s.Reactivity},
			{"destruction_rate", s.DestructionRate},
			{"size", s.Size},
		}
		for _, rg := range ranges {
			if rg.r.Min > rg.r.Max {
				return ValidationError{
					Code:    "INVALID_RANGE",
					Message: fmt.Sprintf("species %q: %s min %g exceeds max %g", s.Name, rg.name, rg.r.Min, rg.r.Max),
				}
			}
		}
		if s.Radius.Min < 0 || s.DestructionRate.Min < 0 || s.Size.Min < 0 || s.DepletionRate < 0 {
			return ValidationError{
				Code:    "INVALID_RANGE",
				Message: fmt.Sprintf("species %q: radius, size and rates must be non-negative", s.Name),
			}
		}
	}
	return nil
}

func validateCouplings(cfg *Config) error {
	for _, c := range cfg.Couplings {
		for _, name := range []string{c.Source, c.Target} {
			if cfg.SpeciesIndex(name) < 0 {
				return ValidationError{
					Code:    "UNKNOWN_SPECIES",
					Message: fmt.Sprintf("coupling references unknown species %q", name),
				}
			}
		}
		if c.Source == c.Target {
			return ValidationError{
				Code:    "INVALID_COUPLING",
				Message: fmt.Sprintf("coupling %q with itself is not supported", c.Source),
			}
		}
	}
	for _, name := range cfg.Economy.Ionosphere.Species {
		if cfg.SpeciesIndex(name) < 0 {
			return ValidationError{
				Code:    "UNKNOWN_SPECIES",
				Message: fmt.Sprintf("ionosphere references unknown species %q", name),
			}
		}
	}

	c := cfg.Coupling
	if c.SpawnProbability < 0 || c.SpawnProbability > 1 {
		return ValidationError{
			Code:    "INVALID_PROBABILITY",
			Message: fmt.Sprintf("spawn_probability %g outside [0, 1]", c.SpawnProbability),
		}
	}
	if c.LifetimeMin < 1 || c.LifetimeSpread < 0 {
		return ValidationError{
			Code:    "INVALID_RANGE",
			Message: fmt.Sprintf("agent lifetime must be at least 1 tick, got min %d spread %d", c.LifetimeMin, c.LifetimeSpread),
		}
	}
	if c.ResonanceWidth <= 0 {
		return ValidationError{
			Code:    "INVALID_RANGE",
			Message: fmt.Sprintf("resonance_width must be positive, got %g", c.ResonanceWidth),
		}
	}
	return nil
}

// RegimeBoundaries is the number of boundaries separating the five regimes.
const RegimeBoundaries = 4

// ValidateThresholds requires a non-empty, strictly decreasing table.
func ValidateThresholds(table []float64) error {
	if len(table) == 0 {
		return ValidationError{Code: "NON_MONOTONIC_THRESHOLDS", Message: "threshold table is empty"}
	}
	for i := 1; i < len(table); i++ {
		if table[i] >= table[i-1] {
			return ValidationError{
				Code:    "NON_MONOTONIC_THRESHOLDS",
				Message: fmt.Sprintf("threshold %d (%g) is not below threshold %d (%g)", i, table[i], i-1, table[i-1]),
			}
		}
	}
	return nil
}

// ValidateRegimes requires exactly RegimeBoundaries strictly decreasing values.
func ValidateRegimes(bounds []float64) error {
	if len(bounds) != RegimeBoundaries {
		return ValidationError{
			Code:    "INVALID_REGIMES",
			Message: fmt.Sprintf("need %d regime boundaries, got %d", RegimeBoundaries, len(bounds)),
		}
	}
	return ValidateThresholds(bounds)
}

func validateDepletion(cfg *Config) error {
	d := cfg.Depletion
	floor := cfg.EffectiveFloor()
	if d.Floor < 0 || d.Regeneration < 0 {
		return ValidationError{
			Code:    "INVALID_FLOOR",
			Message: fmt.Sprintf("floor %g and regeneration %g must be non-negative", d.Floor, d.Regeneration),
		}
	}
	if d.Initial < floor {
		return ValidationError{
			Code:    "INVALID_FLOOR",
			Message: fmt.Sprintf("initial concentration %g is below floor %g", d.Initial, floor),
		}
	}
	if cfg.Threshold.Band <= 0 {
		return ValidationError{
			Code:    "INVALID_RANGE",
			Message: fmt.Sprintf("threshold band must be positive, got %g", cfg.Threshold.Band),
		}
	}
	return nil
}
