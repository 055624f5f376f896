//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"keyline/cmd"
	"keyline/domain/media"

	"github.com/cucumber/godog"
)

type documentContext struct {
	output bytes.Buffer
	err    error
}

var SharedDocumentContext = &documentContext{}

// mockProber implements media.Prober with fixed metadata
type mockProber struct {
	metadata media.Metadata
}

func (m *mockProber) Probe(ctx context.Context, path string) (media.Metadata, error) {
	return m.metadata, nil
}

func InitializeDocumentScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedDocumentContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		testCtx.output.Reset()
		testCtx.err = nil
		return c, nil
	})

	ctx.Step(`^I export the session and validate the document$`, testCtx.iExportAndValidate)
	ctx.Step(`^I export the session, duplicate its first region and validate the document$`, testCtx.iExportDuplicateAndValidate)
	ctx.Step(`^I export the session and sample the document at (\d+) seconds$`, testCtx.iExportAndSampleAt)
	ctx.Step(`^I export the session and inspect the document$`, testCtx.iExportAndInspect)
	ctx.Step(`^I probe a source reporting (\d+) fps and (\d+) frames$`, testCtx.iProbeASource)
	ctx.Step(`^the document output should contain "([^"]*)"$`, testCtx.theDocumentOutputShouldContain)
	ctx.Step(`^the document error should contain "([^"]*)"$`, testCtx.theDocumentErrorShouldContain)
}

func (d *documentContext) iExportAndValidate() error {
	doc := getSessionContext().session.Export()
	d.err = cmd.RunValidateWithDependencies(doc, nil, &d.output)
	if d.err != nil {
		return fmt.Errorf("validate failed: %w", d.err)
	}
	return nil
}

func (d *documentContext) iExportDuplicateAndValidate() error {
	doc := getSessionContext().session.Export()
	if len(doc.Regions) == 0 {
		return fmt.Errorf("exported document has no regions to duplicate")
	}
	doc.Regions = append(doc.Regions, doc.Regions[0])
	d.err = cmd.RunValidateWithDependencies(doc, nil, &d.output)
	return nil
}

func (d *documentContext) iExportAndSampleAt(seconds int) error {
	doc := getSessionContext().session.Export()
	d.err = cmd.RunSampleWithDependencies(doc, nil, float64(seconds), &d.output)
	if d.err != nil {
		return fmt.Errorf("sample failed: %w", d.err)
	}
	return nil
}

func (d *documentContext) iExportAndInspect() error {
	doc := getSessionContext().session.Export()
	d.err = cmd.RunInspectWithDependencies(doc, &d.output)
	if d.err != nil {
		return fmt.Errorf("inspect failed: %w", d.err)
	}
	return nil
}

func (d *documentContext) iProbeASource(fps, frameCount int) error {
	prober := &mockProber{metadata: media.Metadata{
		FrameRate:       float64(fps),
		DurationSeconds: float64(frameCount-1) / float64(fps),
		FrameCount:      frameCount,
		Width:           1920,
		Height:          1080,
	}}

	d.err = cmd.RunProbeWithDependencies(context.Background(), prober, "test.mkv", &d.output)
	if d.err != nil {
		return fmt.Errorf("probe failed: %w", d.err)
	}
	return nil
}

func (d *documentContext) theDocumentOutputShouldContain(expected string) error {
	if !strings.Contains(d.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, d.output.String())
	}
	return nil
}

func (d *documentContext) theDocumentErrorShouldContain(expected string) error {
	if d.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(d.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, d.err)
	}
	return nil
}
