package timeline

import "math"

// Quantizer converts between continuous time in seconds and integer frame
// numbers at a fixed frame rate. All engine state is frame-indexed so that
// keyframe identity is an exact integer comparison; this type is the only
// place the seconds/frames conversion happens, which guarantees that an
// export/import round trip reproduces identical frame numbers.
type Quantizer struct {
	fps float64
}

// DefaultFrameRate is used when a source does not report a frame rate.
const DefaultFrameRate = 30.0

// NewQuantizer creates a quantizer for the given frame rate.
// Non-positive rates fall back to DefaultFrameRate.
func NewQuantizer(fps float64) Quantizer {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return Quantizer{fps: fps}
}

// FPS returns the frame rate this quantizer converts against.
func (q Quantizer) FPS() float64 {
	return q.fps
}

// FrameForTime returns the frame number for a time in seconds.
// Negative times map to frame 0.
func (q Quantizer) FrameForTime(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Round(seconds * q.fps))
}

// TimeForFrame returns the time in seconds at which a frame sits.
func (q Quantizer) TimeForFrame(frame int) float64 {
	if frame <= 0 {
		return 0
	}
	return float64(frame) / q.fps
}

// DurationFrames returns the index of the last frame of a clip with the
// given duration. A 3 s clip at 30 fps ends on frame 90.
func (q Quantizer) DurationFrames(seconds float64) int {
	return q.FrameForTime(seconds)
}
