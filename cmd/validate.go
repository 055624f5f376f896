package cmd

import (
	"fmt"
	"io"
	"os"

	"keyline/infrastructure/config"
	"keyline/infrastructure/store"

	"github.com/spf13/cobra"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a timeline document against the engine invariants",
	Long: `Load a timeline document into a fresh session and verify every
track invariant: sorted unique keyframes, permanent boundary keyframes,
non-overlapping regions.

Example:
  keyline validate --file timeline.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to timeline document (required)")
	validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := store.Load(validateFile)
	if err != nil {
		return err
	}
	return RunValidateWithDependencies(doc, GetConfig(), os.Stdout)
}

// RunValidateWithDependencies validates a document with injected config (for testing)
func RunValidateWithDependencies(doc *store.Document, cfg *config.Config, output io.Writer) error {
	session, err := sessionFromDocument(doc, cfg)
	if err != nil {
		return err
	}
	if err := session.Validate(); err != nil {
		return err
	}

	keyframes := len(session.CropTrack().Keyframes)
	for _, r := range session.Regions() {
		keyframes += len(r.Track.Keyframes)
	}
	fmt.Fprintf(output, "OK: %d regions, %d keyframes\n", len(session.Regions()), keyframes)
	return nil
}
