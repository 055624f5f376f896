package cmd

import (
	"fmt"
	"os"

	"keyline/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "keyline",
	Short: "Timeline keyframe and interpolation engine for crop/pan and highlight editing",
	Long: `keyline maintains the keyframe timelines behind a video editor's
crop/pan and highlight-overlay tools:

  - Validate and inspect exported timeline documents
  - Sample interpolated crop and highlight values at any playhead position
  - Probe source videos for frame rate, duration and dimensions

Example:
  keyline sample --file timeline.yaml --time 2.5`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// The config file is optional: every tunable has a built-in default.
		cfg = nil
	}
}

// GetConfig returns the loaded configuration, falling back to the defaults
// when no config file is present.
func GetConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}
