//go:build integration

package steps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"keyline/domain/timeline"

	"github.com/cucumber/godog"
)

func InitializeTrackScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^I set a crop keyframe at frame (\d+) with x (\d+)$`, iSetACropKeyframeAtFrameWithX)
	ctx.Step(`^the crop keyframe at frame (\d+) should have x (\d+)$`, theCropKeyframeAtFrameShouldHaveX)
	ctx.Step(`^there should be no crop keyframe at frame (\d+)$`, thereShouldBeNoCropKeyframeAtFrame)
	ctx.Step(`^the crop track should have (\d+) keyframes$`, theCropTrackShouldHaveKeyframes)
	ctx.Step(`^the crop keyframe frames should be "([^"]*)"$`, theCropKeyframeFramesShouldBe)
	ctx.Step(`^I remove the crop keyframe at frame (\d+)$`, iRemoveTheCropKeyframeAtFrame)
	ctx.Step(`^the removal should be rejected$`, theRemovalShouldBeRejected)
	ctx.Step(`^I trim the crop range from frame (\d+) to frame (\d+)$`, iTrimTheCropRangeFromFrameToFrame)
	ctx.Step(`^I clean up the trim$`, iCleanUpTheTrim)
	ctx.Step(`^I copy the crop value at frame (\d+)$`, iCopyTheCropValueAtFrame)
	ctx.Step(`^I paste the crop value at frame (\d+)$`, iPasteTheCropValueAtFrame)
	ctx.Step(`^the interpolated crop x at frame (\d+) should be (\d+)$`, theInterpolatedCropXAtFrameShouldBe)
}

func iSetACropKeyframeAtFrameWithX(frame, x int) error {
	s := getSessionContext()
	s.session.UpsertCrop(frame, timeline.Payload{"x": float64(x)})
	return nil
}

func theCropKeyframeAtFrameShouldHaveX(frame, x int) error {
	s := getSessionContext()
	kf, ok := s.session.CropTrack().KeyframeAt(frame)
	if !ok {
		return fmt.Errorf("no crop keyframe at frame %d", frame)
	}
	got, ok := kf.Payload["x"].(float64)
	if !ok {
		return fmt.Errorf("crop keyframe at frame %d has no numeric x field: %v", frame, kf.Payload)
	}
	if math.Abs(got-float64(x)) > 1e-9 {
		return fmt.Errorf("expected x %d at frame %d, got %v", x, frame, got)
	}
	return nil
}

func thereShouldBeNoCropKeyframeAtFrame(frame int) error {
	s := getSessionContext()
	if s.session.CropTrack().IsOnKeyframe(frame) {
		return fmt.Errorf("unexpected crop keyframe at frame %d", frame)
	}
	return nil
}

func theCropTrackShouldHaveKeyframes(count int) error {
	s := getSessionContext()
	if got := len(s.session.CropTrack().Keyframes); got != count {
		return fmt.Errorf("expected %d crop keyframes, got %d", count, got)
	}
	return nil
}

func theCropKeyframeFramesShouldBe(list string) error {
	s := getSessionContext()
	var expected []int
	for _, part := range strings.Split(list, ",") {
		frame, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("bad frame list %q: %v", list, err)
		}
		expected = append(expected, frame)
	}

	kfs := s.session.CropTrack().Keyframes
	if len(kfs) != len(expected) {
		return fmt.Errorf("expected frames %v, got %d keyframes", expected, len(kfs))
	}
	for i, kf := range kfs {
		if kf.Frame != expected[i] {
			return fmt.Errorf("expected frame %d at index %d, got %d", expected[i], i, kf.Frame)
		}
	}
	return nil
}

func iRemoveTheCropKeyframeAtFrame(frame int) error {
	s := getSessionContext()
	s.removed = s.session.RemoveCrop(frame)
	return nil
}

func theRemovalShouldBeRejected() error {
	s := getSessionContext()
	if s.removed {
		return fmt.Errorf("expected the removal to be rejected")
	}
	return nil
}

func iTrimTheCropRangeFromFrameToFrame(start, end int) error {
	s := getSessionContext()
	if !s.session.TrimCropRange(start, end) {
		return fmt.Errorf("trim of range [%d, %d] was rejected", start, end)
	}
	return nil
}

func iCleanUpTheTrim() error {
	getSessionContext().session.CleanupTrim()
	return nil
}

func iCopyTheCropValueAtFrame(frame int) error {
	getSessionContext().session.CopyCrop(frame)
	return nil
}

func iPasteTheCropValueAtFrame(frame int) error {
	s := getSessionContext()
	if !s.session.PasteCrop(frame) {
		return fmt.Errorf("paste at frame %d was rejected", frame)
	}
	return nil
}

func theInterpolatedCropXAtFrameShouldBe(frame, x int) error {
	s := getSessionContext()
	payload := s.session.EvaluateCrop(frame)
	got, ok := payload["x"].(float64)
	if !ok {
		return fmt.Errorf("interpolated crop at frame %d has no numeric x field: %v", frame, payload)
	}
	if math.Abs(got-float64(x)) > 1e-6 {
		return fmt.Errorf("expected interpolated x %d at frame %d, got %v", x, frame, got)
	}
	return nil
}
