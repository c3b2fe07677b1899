package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedScenariosValidate(t *testing.T) {
	ids := EmbeddedScenarios()
	want := []string{"coupling", "economics", "integrated", "satellite", "silica"}
	if len(ids) != len(want) {
		t.Fatalf("EmbeddedScenarios() = %v, expected %v", ids, want)
	}

	for i, id := range ids {
		if id != want[i] {
			t.Errorf("scenario %d = %q, expected %q", i, id, want[i])
		}
		t.Run(id, func(t *testing.T) {
			cfg, err := Load(id, "")
			if err != nil {
				t.Fatalf("Load(%q) error: %v", id, err)
			}
			if cfg.Name != id {
				t.Errorf("Name = %q, expected %q", cfg.Name, id)
			}
			if err := Validate(&cfg); err != nil {
				t.Errorf("Validate(%q) error: %v", id, err)
			}
		})
	}
}

func TestEmbeddedCouplingMatchesHardcoded(t *testing.T) {
	cfg, err := Load("coupling", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	def := DefaultConfig()

	if len(cfg.Species) != len(def.Species) {
		t.Fatalf("species count = %d, expected %d", len(cfg.Species), len(def.Species))
	}
	for i := range def.Species {
		if cfg.Species[i] != def.Species[i] {
			t.Errorf("species %d = %+v, expected %+v", i, cfg.Species[i], def.Species[i])
		}
	}
	if cfg.Coupling != def.Coupling {
		t.Errorf("coupling = %+v, expected %+v", cfg.Coupling, def.Coupling)
	}
	if cfg.Depletion != def.Depletion {
		t.Errorf("depletion = %+v, expected %+v", cfg.Depletion, def.Depletion)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := `
species:
  - name: a
    count: 3
    mass: 1
    damping: 0.9
  - name: b
    count: 4
    mass: 1
    damping: 0.9
couplings:
  - { source: a, target: b }
depletion:
  initial: 260
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("custom", path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "custom" {
		t.Errorf("Name = %q, expected custom", cfg.Name)
	}
	if cfg.Depletion.Initial != 260 {
		t.Errorf("Initial = %v, expected 260", cfg.Depletion.Initial)
	}
	// Unlisted scalar sections keep their defaults.
	if cfg.Depletion.Floor != 50 || cfg.Threshold.Band != 20 {
		t.Errorf("defaults not preserved: floor %v band %v", cfg.Depletion.Floor, cfg.Threshold.Band)
	}
	if len(cfg.Economy.Ionosphere.Species) != 0 {
		t.Errorf("ionosphere species leaked from defaults: %v", cfg.Economy.Ionosphere.Species)
	}
	if err := Validate(&cfg); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestLoadLocalScenarioDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scenarios"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "title: Local Override\nspecies:\n  - { name: x, count: 1, mass: 1, damping: 0.9 }\n"
	if err := os.WriteFile(filepath.Join(dir, "scenarios", "coupling.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)

	cfg, err := Load("coupling", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Title != "Local Override" {
		t.Errorf("Title = %q, expected local file to win over embedded default", cfg.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("coupling", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
	if _, err := Load("no-such-scenario", ""); err == nil {
		t.Error("expected error for unknown scenario")
	}
	if _, err := Parse([]byte("speciez: []\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if err := Validate(&cfg); err != nil {
		t.Errorf("marshalled default config does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		code   string
	}{
		{"default ok", func(c *Config) {}, ""},
		{"no species", func(c *Config) { c.Species = nil; c.Couplings = nil; c.Economy.Ionosphere.Species = nil }, "NO_SPECIES"},
		{"negative population", func(c *Config) { c.Species[0].Count = -1 }, "NEGATIVE_POPULATION"},
		{"negative cap", func(c *Config) { c.Species[1].MaxCount = -5 }, "NEGATIVE_POPULATION"},
		{"zero mass", func(c *Config) { c.Species[0].Mass = 0 }, "INVALID_RANGE"},
		{"damping above one", func(c *Config) { c.Species[0].Damping = 1.2 }, "INVALID_DAMPING"},
		{"zero damping", func(c *Config) { c.Species[1].Damping = 0 }, "INVALID_DAMPING"},
		{"damping one", func(c *Config) { c.Species[0].Damping = 1 }, "INVALID_DAMPING"},
		{"damping just below one", func(c *Config) { c.Species[0].Damping = 0.999 }, ""},
		{"inverted range", func(c *Config) { c.Species[0].Charge = Range{Min: 1, Max: -1} }, "INVALID_RANGE"},
		{"bad probability", func(c *Config) { c.Species[0].InjectionRate = 2 }, "INVALID_PROBABILITY"},
		{"unknown coupling species", func(c *Config) { c.Couplings[0].Target = "iron" }, "UNKNOWN_SPECIES"},
		{"self coupling", func(c *Config) { c.Couplings[0].Target = c.Couplings[0].Source }, "INVALID_COUPLING"},
		{"duplicate species", func(c *Config) { c.Species[1].Name = c.Species[0].Name }, "UNKNOWN_SPECIES"},
		{"unknown debris", func(c *Config) { c.Economy.Ionosphere.Species = []string{"iron"} }, "UNKNOWN_SPECIES"},
		{"non monotonic", func(c *Config) { c.Threshold.Table = []float64{280, 250, 260} }, "NON_MONOTONIC_THRESHOLDS"},
		{"duplicate threshold", func(c *Config) { c.Threshold.Table = []float64{280, 280} }, "NON_MONOTONIC_THRESHOLDS"},
		{"empty table", func(c *Config) { c.Threshold.Table = nil }, "NON_MONOTONIC_THRESHOLDS"},
		{"missing regimes", func(c *Config) { c.Threshold.Regimes = nil }, "INVALID_REGIMES"},
		{"three regimes", func(c *Config) { c.Threshold.Regimes = []float64{250, 220, 180} }, "INVALID_REGIMES"},
		{"non monotonic regimes", func(c *Config) { c.Threshold.Regimes = []float64{250, 260, 180, 150} }, "NON_MONOTONIC_THRESHOLDS"},
		{"initial below floor", func(c *Config) { c.Depletion.Initial = 40 }, "INVALID_FLOOR"},
		{"species floor", func(c *Config) { c.Species[0].Floor = 290 }, "INVALID_FLOOR"},
		{"zero width", func(c *Config) { c.Domain.Width = 0 }, "INVALID_BOUNDS"},
		{"zero lifetime", func(c *Config) { c.Coupling.LifetimeMin = 0 }, "INVALID_RANGE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig().Clone()
			tc.mutate(&cfg)
			err := Validate(&cfg)

			if tc.code == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, expected ValidationError %s", err, tc.code)
			}
			if verr.Code != tc.code {
				t.Errorf("Code = %s, expected %s (%s)", verr.Code, tc.code, verr.Message)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ValidationError should match ErrInvalidConfig")
			}
		})
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	a := DefaultConfig()
	b := a.Clone()
	b.Species[0].Count = 999
	b.Threshold.Table[0] = 1
	b.Threshold.Regimes[0] = 1
	if a.Species[0].Count == 999 || a.Threshold.Table[0] == 1 || a.Threshold.Regimes[0] == 1 {
		t.Error("Clone() shares slices with the original")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    Preset
		wantCount int
		wantSpawn float64
	}{
		{PresetCalm, 20, 0.01},
		{PresetBaseline, 40, 0.02},
		{PresetSevere, 60, 0.04},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultConfig().Clone()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Species[0].Count != tc.wantCount {
				t.Errorf("Count = %d, expected %d", cfg.Species[0].Count, tc.wantCount)
			}
			if cfg.Coupling.SpawnProbability != tc.wantSpawn {
				t.Errorf("SpawnProbability = %v, expected %v", cfg.Coupling.SpawnProbability, tc.wantSpawn)
			}
		})
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
	if p, err := ParsePreset(""); err != nil || p != PresetBaseline {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
}

func TestEffectiveFloor(t *testing.T) {
	cfg, err := Load("silica", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.EffectiveFloor(); got != 270 {
		t.Errorf("EffectiveFloor() = %v, expected 270", got)
	}
}
