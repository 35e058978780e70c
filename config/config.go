// Package config loads the batch configuration: the instance directories to
// process and the parameters of every generator.
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
)

type Config struct {
	// Instances lists the instance directories, processed in order.
	Instances []string `json:"instances"`
	// Seed feeds the process-wide random source; 0 seeds from the clock.
	Seed int64 `json:"seed"`

	Availability   AvailabilityConfig `json:"availability"`
	LegPreferences LegPrefsConfig     `json:"leg_preferences"`
	Vacations      VacationsConfig    `json:"vacations"`
	Credit         CreditConfig       `json:"credit"`
	Metrics        MetricsConfig      `json:"metrics"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
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
	// Optional environment overrides
	if err := k.Load(env.Provider("CREWGEN_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "crewgen_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Availability.SetDefaults()
	cfg.LegPreferences.SetDefaults()
	cfg.Vacations.SetDefaults()
	cfg.Credit.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if len(c.Instances) == 0 {
		return fmt.Errorf("instances: at least one instance directory is required")
	}
	if err := c.Availability.Validate(); err != nil {
		return fmt.Errorf("availability: %w", err)
	}
	if err := c.LegPreferences.Validate(); err != nil {
		return fmt.Errorf("leg_preferences: %w", err)
	}
	if err := c.Vacations.Validate(); err != nil {
		return fmt.Errorf("vacations: %w", err)
	}
	if err := c.Credit.Validate(); err != nil {
		return fmt.Errorf("credit: %w", err)
	}
	return c.Metrics.Validate()
}
