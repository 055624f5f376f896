//go:build integration

package steps

import (
	"fmt"

	"keyline/domain/region"
	"keyline/domain/timeline"

	"github.com/cucumber/godog"
)

func InitializeRegionScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^I create a highlight region at frame (\d+)$`, iCreateAHighlightRegionAtFrame)
	ctx.Step(`^the region creation should be rejected$`, theRegionCreationShouldBeRejected)
	ctx.Step(`^the session should have (\d+) highlight regions?$`, theSessionShouldHaveHighlightRegions)
	ctx.Step(`^region (\d+) should span frames (\d+) to (\d+)$`, regionShouldSpanFramesTo)
	ctx.Step(`^I move the start boundary of region (\d+) to frame (\d+)$`, iMoveTheStartBoundaryOfRegionToFrame)
	ctx.Step(`^I move the end boundary of region (\d+) to frame (\d+)$`, iMoveTheEndBoundaryOfRegionToFrame)
	ctx.Step(`^I disable region (\d+)$`, iDisableRegion)
	ctx.Step(`^I set a highlight keyframe at frame (\d+) with opacity (\d+(?:\.\d+)?)$`, iSetAHighlightKeyframeAtFrameWithOpacity)
	ctx.Step(`^the highlight write should be rejected$`, theHighlightWriteShouldBeRejected)
	ctx.Step(`^region (\d+) should have a keyframe at frame (\d+)$`, regionShouldHaveAKeyframeAtFrame)
	ctx.Step(`^the highlight at frame (\d+) should be present$`, theHighlightAtFrameShouldBePresent)
	ctx.Step(`^the highlight at frame (\d+) should be absent$`, theHighlightAtFrameShouldBeAbsent)
}

// regionByIndex returns the 1-based nth region in start order
func regionByIndex(index int) (region.Region, error) {
	s := getSessionContext()
	regions := s.session.Regions()
	if index < 1 || index > len(regions) {
		return region.Region{}, fmt.Errorf("region %d does not exist, have %d", index, len(regions))
	}
	return regions[index-1], nil
}

func iCreateAHighlightRegionAtFrame(frame int) error {
	s := getSessionContext()
	r, ok := s.session.CreateRegion(frame)
	s.createOK = ok
	if ok {
		s.lastRegionID = r.ID
	}
	return nil
}

func theRegionCreationShouldBeRejected() error {
	s := getSessionContext()
	if s.createOK {
		return fmt.Errorf("expected the region creation to be rejected")
	}
	return nil
}

func theSessionShouldHaveHighlightRegions(count int) error {
	s := getSessionContext()
	if got := len(s.session.Regions()); got != count {
		return fmt.Errorf("expected %d regions, got %d", count, got)
	}
	return nil
}

func regionShouldSpanFramesTo(index, start, end int) error {
	r, err := regionByIndex(index)
	if err != nil {
		return err
	}
	if r.StartFrame != start || r.EndFrame != end {
		return fmt.Errorf("expected region %d to span [%d, %d], got [%d, %d]",
			index, start, end, r.StartFrame, r.EndFrame)
	}
	return nil
}

func iMoveTheStartBoundaryOfRegionToFrame(index, frame int) error {
	r, err := regionByIndex(index)
	if err != nil {
		return err
	}
	s := getSessionContext()
	if !s.session.MoveRegionBoundary(r.ID, region.BoundaryStart, frame) {
		return fmt.Errorf("start boundary move of region %d was rejected", index)
	}
	return nil
}

func iMoveTheEndBoundaryOfRegionToFrame(index, frame int) error {
	r, err := regionByIndex(index)
	if err != nil {
		return err
	}
	s := getSessionContext()
	if !s.session.MoveRegionBoundary(r.ID, region.BoundaryEnd, frame) {
		return fmt.Errorf("end boundary move of region %d was rejected", index)
	}
	return nil
}

func iDisableRegion(index int) error {
	r, err := regionByIndex(index)
	if err != nil {
		return err
	}
	s := getSessionContext()
	if !s.session.SetRegionEnabled(r.ID, false) {
		return fmt.Errorf("disabling region %d was rejected", index)
	}
	return nil
}

func iSetAHighlightKeyframeAtFrameWithOpacity(frame int, opacity float64) error {
	s := getSessionContext()
	s.writeOK = s.session.UpsertHighlight(frame, timeline.Payload{"opacity": opacity})
	return nil
}

func theHighlightWriteShouldBeRejected() error {
	s := getSessionContext()
	if s.writeOK {
		return fmt.Errorf("expected the highlight write to be rejected")
	}
	return nil
}

func regionShouldHaveAKeyframeAtFrame(index, frame int) error {
	r, err := regionByIndex(index)
	if err != nil {
		return err
	}
	if !r.Track.IsOnKeyframe(frame) {
		return fmt.Errorf("region %d has no keyframe at frame %d", index, frame)
	}
	return nil
}

func theHighlightAtFrameShouldBePresent(frame int) error {
	s := getSessionContext()
	if _, ok := s.session.EvaluateHighlight(frame); !ok {
		return fmt.Errorf("expected a highlight value at frame %d", frame)
	}
	return nil
}

func theHighlightAtFrameShouldBeAbsent(frame int) error {
	s := getSessionContext()
	if payload, ok := s.session.EvaluateHighlight(frame); ok {
		return fmt.Errorf("expected no highlight value at frame %d, got %v", frame, payload)
	}
	return nil
}
