package region

import "keyline/domain/timeline"

// Region is an independent, non-overlapping time span owning its own keyframe
// track, used where multiple simultaneous overlay effects are needed. Regions
// are created by a Manager, never directly, and own their track for their
// full lifetime.
type Region struct {
	// ID is an opaque identifier assigned at creation.
	ID string

	// StartFrame and EndFrame delimit the region. Overlap between regions is
	// checked on the half-open interval [StartFrame, EndFrame).
	StartFrame int
	EndFrame   int

	// Enabled regions participate in interpolation queries and accept
	// keyframe writes; disabled regions retain their track but reject both.
	Enabled bool

	Track timeline.Track
}

// Contains reports whether frame falls inside the region, boundary frames
// included.
func (r Region) Contains(frame int) bool {
	return frame >= r.StartFrame && frame <= r.EndFrame
}

// overlaps checks the half-open spans [StartFrame, EndFrame) for
// intersection. Touching regions do not overlap.
func (r Region) overlaps(startFrame, endFrame int) bool {
	return startFrame < r.EndFrame && endFrame > r.StartFrame
}
