package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the external representation of a timeline. All positions are
// time-based (seconds as floats); the engine converts to frame numbers at
// import through its quantizer, which is the sole conversion boundary.
type Document struct {
	Version   string  `yaml:"version"`
	FrameRate float64 `yaml:"frame_rate"`
	Duration  float64 `yaml:"duration"`

	// Crop holds the single crop track's keyframes, if any.
	Crop []KeyframeRecord `yaml:"crop,omitempty"`

	// Regions holds the highlight regions.
	Regions []RegionRecord `yaml:"regions"`
}

// RegionRecord is one highlight region in the exported shape.
type RegionRecord struct {
	ID        string           `yaml:"id"`
	StartTime float64          `yaml:"start_time"`
	EndTime   float64          `yaml:"end_time"`
	Enabled   bool             `yaml:"enabled"`
	Keyframes []KeyframeRecord `yaml:"keyframes"`
}

// KeyframeRecord is one keyframe with its payload fields inlined, so a crop
// keyframe serializes as {time, x, y, width, height} and a highlight keyframe
// as {time, x, y, radius_x, radius_y, color, opacity}.
type KeyframeRecord struct {
	Time   float64        `yaml:"time"`
	Fields map[string]any `yaml:",inline"`
}

// CurrentVersion is written into every saved document.
const CurrentVersion = "1.0"

// Load reads and parses a timeline document from a YAML file
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse timeline file: %w", err)
	}

	return &doc, nil
}

// Save writes a timeline document to a YAML file
func Save(doc *Document, path string) error {
	if doc.Version == "" {
		doc.Version = CurrentVersion
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize timeline: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timeline file: %w", err)
	}

	return nil
}
