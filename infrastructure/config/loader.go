package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete engine configuration
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Regions   RegionsConfig   `yaml:"regions"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// EngineConfig contains keyframe track tuning
type EngineConfig struct {
	// SnapToleranceFrames is the distance within which an upsert snaps onto
	// an existing keyframe instead of creating a near-duplicate.
	SnapToleranceFrames int `yaml:"snap_tolerance_frames"`
}

// RegionsConfig contains highlight region sizing
type RegionsConfig struct {
	DefaultDurationSeconds float64 `yaml:"default_duration_seconds"`
	MinDurationSeconds     float64 `yaml:"min_duration_seconds"`
}

// HighlightConfig contains the default highlight appearance
type HighlightConfig struct {
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`

	// RadiusRatio sizes the default ellipse radii as a fraction of the
	// source dimensions.
	RadiusRatio float64 `yaml:"radius_ratio"`
}

// Default returns the configuration with the empirically tuned defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			SnapToleranceFrames: 5,
		},
		Regions: RegionsConfig{
			DefaultDurationSeconds: 3.0,
			MinDurationSeconds:     0.5,
		},
		Highlight: HighlightConfig{
			Color:       "#FFD700",
			Opacity:     0.35,
			RadiusRatio: 0.15,
		},
	}
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
