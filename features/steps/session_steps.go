//go:build integration

package steps

import (
	"context"
	"fmt"

	"keyline/application/editor"
	"keyline/domain/media"

	"github.com/cucumber/godog"
)

// sessionContext holds the editing session and gesture results shared by the
// track and region steps
type sessionContext struct {
	session *editor.Session

	removed      bool
	lastRegionID string
	createOK     bool
	writeOK      bool
}

// SharedSessionContext is reset before each scenario via Before hook
var SharedSessionContext *sessionContext

func getSessionContext() *sessionContext {
	return SharedSessionContext
}

func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedSessionContext = &sessionContext{}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedSessionContext = nil
		return c, nil
	})

	ctx.Step(`^an editing session over a (\d+) second source at (\d+) fps$`, anEditingSessionOverASecondSourceAtFps)
}

func anEditingSessionOverASecondSourceAtFps(seconds, fps int) error {
	s := getSessionContext()
	s.session = editor.NewSession(media.Metadata{
		FrameRate:       float64(fps),
		DurationSeconds: float64(seconds),
		Width:           1920,
		Height:          1080,
	}, nil)
	if s.session == nil {
		return fmt.Errorf("failed to create session")
	}
	return nil
}
