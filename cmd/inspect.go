package cmd

import (
	"fmt"
	"io"
	"os"

	"keyline/infrastructure/store"

	"github.com/spf13/cobra"
)

var inspectFile string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a timeline document",
	Long: `Print a summary of an exported timeline document: frame rate,
duration, crop keyframes and highlight regions.

Example:
  keyline inspect --file timeline.yaml`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Path to timeline document (required)")
	inspectCmd.MarkFlagRequired("file")
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := store.Load(inspectFile)
	if err != nil {
		return err
	}
	return RunInspectWithDependencies(doc, os.Stdout)
}

// RunInspectWithDependencies prints the document summary (for testing)
func RunInspectWithDependencies(doc *store.Document, output io.Writer) error {
	fmt.Fprintf(output, "Timeline document (version %s)\n", doc.Version)
	fmt.Fprintf(output, "  Frame rate: %.3f fps\n", doc.FrameRate)
	fmt.Fprintf(output, "  Duration:   %.3fs\n", doc.Duration)
	fmt.Fprintf(output, "  Crop keyframes: %d\n", len(doc.Crop))
	fmt.Fprintf(output, "  Regions: %d\n", len(doc.Regions))

	for i, r := range doc.Regions {
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(output, "    [%d] %s: %.3fs - %.3fs, %d keyframes, %s\n",
			i+1, r.ID, r.StartTime, r.EndTime, len(r.Keyframes), state)
	}
	return nil
}
