// Package config loads the settings of a simulation run from a YAML or JSON
// file with CELLSIM_ environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/cellsim/core/cell"
	"github.com/kilianp07/cellsim/core/telemetry"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. CELLSIM_SIMULATION__DT=5.
const EnvPrefix = "CELLSIM_"

type Config struct {
	// Cell starts from the KokamNMC preset; keys present in the file
	// override it.
	Cell        cell.Params      `json:"cell"`
	Degradation SelectorConfig   `json:"degradation"`
	Model       ModelConfig      `json:"model"`
	Simulation  SimulationConfig `json:"simulation"`
	Logging     LoggingConfig    `json:"logging"`
	Telemetry   telemetry.Config `json:"telemetry"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Cell:        cell.KokamNMC(),
		Degradation: DefaultSelector(),
		Logging:     LoggingConfig{Verbosity: 3},
	}
}

// Load reads path on top of Default and applies environment overrides. An
// empty path only applies the overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	prefix := strings.ToLower(EnvPrefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), prefix)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulation.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section that is not validated by the cell itself.
func (c Config) Validate() error {
	if _, err := c.Degradation.Selector(); err != nil {
		return err
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}
