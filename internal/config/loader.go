package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a scenario.
// Search order: customPath -> ~/.atmosim/scenarios/<id>.yaml -> ./scenarios/<id>.yaml -> embedded default
func Load(id, customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return named(cfg, id), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(id + ".yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return named(cfg, id), nil
			}
		}
	}

	// Try local scenarios directory
	if data, err := os.ReadFile(filepath.Join("scenarios", id+".yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return named(cfg, id), nil
		}
	}

	// Use embedded default YAML
	data, err := DefaultYAML(id)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		if id == DefaultConfig().Name {
			return DefaultConfig(), nil // Fallback to hardcoded if embed fails
		}
		return Config{}, fmt.Errorf("config: embedded %q is invalid: %w", id, err)
	}
	return named(cfg, id), nil
}

// Parse decodes a YAML scenario. Scalar sections left out of the document
// keep their reference defaults; species and couplings must be listed.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.Name = ""
	cfg.Title = ""
	cfg.Species = nil
	cfg.Couplings = nil
	cfg.Economy.Ionosphere.Species = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes a config back to YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return buf.Bytes(), nil
}

// named fills in the scenario ID when the document omits it.
func named(cfg Config, id string) Config {
	if cfg.Name == "" {
		cfg.Name = id
	}
	if cfg.Title == "" {
		cfg.Title = id
	}
	return cfg
}

// userConfigPath returns the path to a user scenario file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".atmosim", "scenarios", filename)
}
