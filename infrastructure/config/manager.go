package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Errors for config management
var (
	ErrInvalidTolerance = errors.New("snap tolerance must be positive")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrInvalidColor     = errors.New("invalid color format")
	ErrInvalidOpacity   = errors.New("opacity must be between 0 and 1")
)

// hexColorRegex matches #RGB or #RRGGBB colors
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHexColor reports whether s is a #RGB or #RRGGBB color
func ValidHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// ConfigManager provides update operations for the engine tunables
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// SetSnapTolerance updates the keyframe snap tolerance
func (m *ConfigManager) SetSnapTolerance(frames int) error {
	if frames <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTolerance, frames)
	}
	m.config.Engine.SnapToleranceFrames = frames
	return Save(m.config, m.configPath)
}

// SetRegionDurations updates the default and minimum region durations
func (m *ConfigManager) SetRegionDurations(defaultSeconds, minSeconds float64) error {
	if defaultSeconds <= 0 {
		return fmt.Errorf("%w: default %.2fs", ErrInvalidDuration, defaultSeconds)
	}
	if minSeconds <= 0 || minSeconds > defaultSeconds {
		return fmt.Errorf("%w: minimum %.2fs", ErrInvalidDuration, minSeconds)
	}
	m.config.Regions.DefaultDurationSeconds = defaultSeconds
	m.config.Regions.MinDurationSeconds = minSeconds
	return Save(m.config, m.configPath)
}

// SetHighlightAppearance updates the default highlight color and opacity
func (m *ConfigManager) SetHighlightAppearance(color string, opacity float64) error {
	color = strings.TrimSpace(color)
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	if opacity < 0 || opacity > 1 {
		return fmt.Errorf("%w: %.2f", ErrInvalidOpacity, opacity)
	}
	m.config.Highlight.Color = color
	m.config.Highlight.Opacity = opacity
	return Save(m.config, m.configPath)
}
