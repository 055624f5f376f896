package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"keyline/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for the engine tunables and creates config.yaml.

This command guides you through the snap tolerance, the default and
minimum region durations and the default highlight appearance.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to keyline setup!")
	fmt.Println()

	cfg := config.Default()

	if err := promptEngine(prompter, cfg); err != nil {
		return err
	}
	if err := promptRegions(prompter, cfg); err != nil {
		return err
	}
	if err := promptHighlight(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptEngine(prompter Prompter, cfg *config.Config) error {
	answer, err := prompter.Input("Snap tolerance in frames?", strconv.Itoa(cfg.Engine.SnapToleranceFrames))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if answer != "" {
		tolerance, err := strconv.Atoi(answer)
		if err != nil || tolerance <= 0 {
			return fmt.Errorf("snap tolerance must be a positive integer: %q", answer)
		}
		cfg.Engine.SnapToleranceFrames = tolerance
	}
	return nil
}

func promptRegions(prompter Prompter, cfg *config.Config) error {
	answer, err := prompter.Input("Default region duration in seconds?",
		strconv.FormatFloat(cfg.Regions.DefaultDurationSeconds, 'f', -1, 64))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if answer != "" {
		duration, err := strconv.ParseFloat(answer, 64)
		if err != nil || duration <= 0 {
			return fmt.Errorf("default duration must be a positive number: %q", answer)
		}
		cfg.Regions.DefaultDurationSeconds = duration
	}

	answer, err = prompter.Input("Minimum region duration in seconds?",
		strconv.FormatFloat(cfg.Regions.MinDurationSeconds, 'f', -1, 64))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if answer != "" {
		duration, err := strconv.ParseFloat(answer, 64)
		if err != nil || duration <= 0 {
			return fmt.Errorf("minimum duration must be a positive number: %q", answer)
		}
		cfg.Regions.MinDurationSeconds = duration
	}

	if cfg.Regions.MinDurationSeconds > cfg.Regions.DefaultDurationSeconds {
		return fmt.Errorf("minimum duration %.2fs exceeds default duration %.2fs",
			cfg.Regions.MinDurationSeconds, cfg.Regions.DefaultDurationSeconds)
	}
	return nil
}

func promptHighlight(prompter Prompter, cfg *config.Config) error {
	color, err := prompter.Input("Default highlight color?", cfg.Highlight.Color)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if color != "" {
		if !config.ValidHexColor(color) {
			return fmt.Errorf("color must be a hex value like #FFD700: %q", color)
		}
		cfg.Highlight.Color = color
	}

	answer, err := prompter.Input("Default highlight opacity (0-1)?",
		strconv.FormatFloat(cfg.Highlight.Opacity, 'f', -1, 64))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if answer != "" {
		opacity, err := strconv.ParseFloat(answer, 64)
		if err != nil || opacity < 0 || opacity > 1 {
			return fmt.Errorf("opacity must be between 0 and 1: %q", answer)
		}
		cfg.Highlight.Opacity = opacity
	}
	return nil
}
