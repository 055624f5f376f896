package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"keyline/application/editor"
	"keyline/domain/media"
	"keyline/domain/timeline"
	"keyline/infrastructure/config"
	"keyline/infrastructure/store"

	"github.com/spf13/cobra"
)

var (
	sampleFile  string
	sampleTime  float64
	sampleFrom  float64
	sampleTo    float64
	sampleEvery float64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Evaluate the interpolated timeline at a playhead position",
	Long: `Load a timeline document and print the interpolated crop rectangle
and, when the playhead falls inside an enabled region, the highlight value.

A single position is sampled with --time; a range is swept with --from,
--to and --every.

Example:
  keyline sample --file timeline.yaml --time 2.5
  keyline sample --file timeline.yaml --from 0 --to 10 --every 0.5`,
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVar(&sampleFile, "file", "", "Path to timeline document (required)")
	sampleCmd.Flags().Float64Var(&sampleTime, "time", 0, "Playhead position in seconds")
	sampleCmd.Flags().Float64Var(&sampleFrom, "from", 0, "Range start in seconds")
	sampleCmd.Flags().Float64Var(&sampleTo, "to", 0, "Range end in seconds")
	sampleCmd.Flags().Float64Var(&sampleEvery, "every", 1.0, "Range sampling step in seconds")
	sampleCmd.MarkFlagRequired("file")
}

func runSample(cmd *cobra.Command, args []string) error {
	doc, err := store.Load(sampleFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("to") {
		return RunSampleRangeWithDependencies(doc, GetConfig(), sampleFrom, sampleTo, sampleEvery, os.Stdout)
	}
	return RunSampleWithDependencies(doc, GetConfig(), sampleTime, os.Stdout)
}

// RunSampleWithDependencies evaluates the timeline at the given playhead
// position with injected config (for testing)
func RunSampleWithDependencies(doc *store.Document, cfg *config.Config, seconds float64, output io.Writer) error {
	session, err := sessionFromDocument(doc, cfg)
	if err != nil {
		return err
	}

	printSample(session, seconds, output)
	return nil
}

// RunSampleRangeWithDependencies sweeps the timeline from one playhead
// position to another with injected config (for testing)
func RunSampleRangeWithDependencies(doc *store.Document, cfg *config.Config, from, to, every float64, output io.Writer) error {
	if every <= 0 {
		return fmt.Errorf("sampling step must be positive, got %.3f", every)
	}
	if to < from {
		return fmt.Errorf("range end %.3fs is before range start %.3fs", to, from)
	}

	session, err := sessionFromDocument(doc, cfg)
	if err != nil {
		return err
	}

	for seconds := from; seconds <= to; seconds += every {
		printSample(session, seconds, output)
	}
	return nil
}

func sessionFromDocument(doc *store.Document, cfg *config.Config) (*editor.Session, error) {
	session := editor.NewSession(media.Metadata{
		FrameRate:       doc.FrameRate,
		DurationSeconds: doc.Duration,
	}, cfg)

	if err := session.Import(doc); err != nil {
		return nil, err
	}
	return session, nil
}

func printSample(session *editor.Session, seconds float64, output io.Writer) {
	frame := session.Quantizer().FrameForTime(seconds)
	fmt.Fprintf(output, "Frame %d (%.3fs at %.3f fps)\n", frame, seconds, session.Quantizer().FPS())
	fmt.Fprintf(output, "  Crop:      %s\n", formatPayload(session.EvaluateCrop(frame)))

	if highlight, ok := session.EvaluateHighlight(frame); ok {
		fmt.Fprintf(output, "  Highlight: %s\n", formatPayload(highlight))
	} else {
		fmt.Fprintln(output, "  Highlight: none (outside enabled regions)")
	}
	if session.IsFrameOnKeyframe(frame) {
		fmt.Fprintln(output, "  Playhead is on a keyframe")
	}
}

// formatPayload renders a payload with stable field ordering
func formatPayload(p timeline.Payload) string {
	if len(p) == 0 {
		return "{}"
	}
	fields := make([]string, 0, len(p))
	for name := range p {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	out := "{"
	for i, name := range fields {
		if i > 0 {
			out += ", "
		}
		switch v := p[name].(type) {
		case float64:
			out += fmt.Sprintf("%s: %.2f", name, v)
		default:
			out += fmt.Sprintf("%s: %v", name, v)
		}
	}
	return out + "}"
}
