package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"keyline/domain/media"
	"keyline/infrastructure/probe"

	"github.com/spf13/cobra"
)

var probeSource string

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Read frame rate, duration and dimensions from a source video",
	Long: `Open a source video and print the constants a timeline session is
created with: frame rate, duration, frame count and dimensions.

Requires building with -tags=probe and an OpenCV/GoCV installation.

Example:
  keyline probe --source recording.mkv`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVar(&probeSource, "source", "", "Path to source video (required)")
	probeCmd.MarkFlagRequired("source")
}

func runProbe(cmd *cobra.Command, args []string) error {
	return RunProbeWithDependencies(cmd.Context(), probe.New(), probeSource, os.Stdout)
}

// RunProbeWithDependencies probes a source with an injected prober (for testing)
func RunProbeWithDependencies(ctx context.Context, prober media.Prober, source string, output io.Writer) error {
	md, err := prober.Probe(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", source, err)
	}

	fmt.Fprintf(output, "Source: %s\n", source)
	fmt.Fprintf(output, "  Frame rate: %.3f fps\n", md.FrameRate)
	fmt.Fprintf(output, "  Duration:   %.3fs (%d frames)\n", md.DurationSeconds, md.FrameCount)
	fmt.Fprintf(output, "  Dimensions: %dx%d\n", md.Width, md.Height)
	return nil
}
