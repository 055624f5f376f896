package editor

import (
	"fmt"

	"keyline/application/defaults"
	"keyline/domain/media"
	"keyline/domain/region"
	"keyline/domain/timeline"
	"keyline/infrastructure/config"
)

// Session coordinates one editing session over a single source video. It owns
// the crop track, the highlight region manager and the copy/paste clipboards,
// routes host gestures to the owning track, and answers the read-only queries
// rendering code issues every animation frame. The session has no concurrency
// of its own; callers apply gestures strictly in order.
type Session struct {
	quantizer timeline.Quantizer
	meta      media.Metadata
	cfg       *config.Config
	endFrame  int

	crop    timeline.Track
	regions *region.Manager

	cropClipboard      timeline.Payload
	highlightClipboard timeline.Payload
}

// NewSession creates a session for a source described by md. A nil cfg uses
// the built-in defaults. The crop track is initialized to the full frame.
func NewSession(md media.Metadata, cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}

	q := timeline.NewQuantizer(md.FrameRate)
	endFrame := q.DurationFrames(md.DurationSeconds)
	if endFrame < 1 && md.FrameCount > 1 {
		endFrame = md.FrameCount - 1
	}
	if endFrame < 1 {
		endFrame = 1
	}

	trackOpts := timeline.Options{SnapToleranceFrames: cfg.Engine.SnapToleranceFrames}

	return &Session{
		quantizer: q,
		meta:      md,
		cfg:       cfg,
		endFrame:  endFrame,
		crop:      timeline.NewTrack(trackOpts).Initialize(defaults.Crop(md.Width, md.Height), 0, endFrame),
		regions: region.NewManager(endFrame, region.Options{
			DefaultDurationFrames: q.FrameForTime(cfg.Regions.DefaultDurationSeconds),
			MinDurationFrames:     q.FrameForTime(cfg.Regions.MinDurationSeconds),
			Track:                 trackOpts,
		}),
	}
}

// Quantizer returns the session's time/frame conversion boundary.
func (s *Session) Quantizer() timeline.Quantizer {
	return s.quantizer
}

// Metadata returns the source constants the session was created with.
func (s *Session) Metadata() media.Metadata {
	return s.meta
}

// EndFrame returns the last frame of the timeline.
func (s *Session) EndFrame() int {
	return s.endFrame
}

// --- Crop track gestures ---

// CropTrack returns the current crop track state.
func (s *Session) CropTrack() timeline.Track {
	return s.crop
}

// UpsertCrop writes a crop keyframe at frame.
func (s *Session) UpsertCrop(frame int, payload timeline.Payload) {
	s.crop = s.crop.Upsert(frame, payload, timeline.OriginUser)
}

// RemoveCrop deletes the crop keyframe at frame, subject to the track's
// deletion rules.
func (s *Session) RemoveCrop(frame int) bool {
	track, removed := s.crop.Remove(frame)
	s.crop = track
	return removed
}

// EvaluateCrop returns the interpolated crop rectangle at frame.
func (s *Session) EvaluateCrop(frame int) timeline.Payload {
	return timeline.Evaluate(s.crop.Keyframes, frame, defaults.Crop(s.meta.Width, s.meta.Height))
}

// CopyCrop stores the interpolated crop value at frame on the clipboard.
func (s *Session) CopyCrop(frame int) {
	s.cropClipboard = s.EvaluateCrop(frame)
}

// PasteCrop writes the clipboard crop value at frame. Returns false when
// nothing has been copied.
func (s *Session) PasteCrop(frame int) bool {
	if s.cropClipboard == nil {
		return false
	}
	s.UpsertCrop(frame, s.cropClipboard)
	return true
}

// TrimCropRange removes every crop keyframe in [startFrame, endFrame]
// inclusive and inserts trim-origin continuity keyframes at the new edges so
// the picture does not jump there. Boundary keyframes caught by the range are
// re-seeded as Permanent with the pre-trim interpolated values. The track
// stays in the trimming state until CleanupTrim is called.
func (s *Session) TrimCropRange(startFrame, endFrame int) bool {
	if startFrame > endFrame || endFrame < 0 || startFrame > s.endFrame {
		return false
	}

	edgeStart := s.EvaluateCrop(startFrame)
	edgeEnd := s.EvaluateCrop(endFrame)

	track := s.crop.DeleteRange(startFrame, endFrame)

	if startFrame <= track.StartFrame {
		track = track.Upsert(track.StartFrame, edgeStart, timeline.OriginPermanent)
	} else {
		track = track.Upsert(startFrame, edgeStart, timeline.OriginTrim)
	}
	if endFrame >= track.EndFrame {
		track = track.Upsert(track.EndFrame, edgeEnd, timeline.OriginPermanent)
	} else {
		track = track.Upsert(endFrame, edgeEnd, timeline.OriginTrim)
	}

	s.crop = track
	return true
}

// CleanupTrim discards the trim-origin continuity keyframes once the host has
// reconciled the trim.
func (s *Session) CleanupTrim() {
	s.crop = s.crop.CleanupTrim()
}

// --- Highlight region gestures ---

// Regions returns the current highlight regions in start order.
func (s *Session) Regions() []region.Region {
	return s.regions.Regions()
}

// CreateRegion adds a highlight region at frame with the configured default
// duration and appearance. Returns false when the span would be too short or
// collide with an existing region.
func (s *Session) CreateRegion(atFrame int) (region.Region, bool) {
	payload := defaults.Highlight(
		s.meta.Width, s.meta.Height,
		s.cfg.Highlight.RadiusRatio, s.cfg.Highlight.Color, s.cfg.Highlight.Opacity,
	)
	return s.regions.Create(atFrame, payload)
}

// MoveRegionBoundary drags a region edge to targetFrame, clamped against the
// region's minimum duration and its neighbours.
func (s *Session) MoveRegionBoundary(id string, which region.Boundary, targetFrame int) bool {
	return s.regions.MoveBoundary(id, which, targetFrame)
}

// DeleteRegion removes a region and its track.
func (s *Session) DeleteRegion(id string) bool {
	return s.regions.Delete(id)
}

// SetRegionEnabled toggles a region on or off.
func (s *Session) SetRegionEnabled(id string, enabled bool) bool {
	return s.regions.SetEnabled(id, enabled)
}

// UpsertHighlight writes a highlight keyframe into the enabled region
// containing frame.
func (s *Session) UpsertHighlight(frame int, payload timeline.Payload) bool {
	return s.regions.Upsert(frame, payload, timeline.OriginUser)
}

// RemoveHighlightKeyframe deletes the highlight keyframe at frame.
func (s *Session) RemoveHighlightKeyframe(frame int) bool {
	return s.regions.RemoveKeyframe(frame)
}

// EvaluateHighlight returns the interpolated highlight value at frame, or
// false when the frame is outside every enabled region.
func (s *Session) EvaluateHighlight(frame int) (timeline.Payload, bool) {
	r, ok := s.regions.RegionAt(frame)
	if !ok || !r.Enabled {
		return nil, false
	}
	return timeline.Evaluate(r.Track.Keyframes, frame, nil), true
}

// CopyHighlight stores the interpolated highlight value at frame on the
// clipboard. Returns false outside enabled regions.
func (s *Session) CopyHighlight(frame int) bool {
	payload, ok := s.EvaluateHighlight(frame)
	if !ok {
		return false
	}
	s.highlightClipboard = payload
	return true
}

// PasteHighlight writes the clipboard highlight value at frame, subject to
// the same routing rules as UpsertHighlight.
func (s *Session) PasteHighlight(frame int) bool {
	if s.highlightClipboard == nil {
		return false
	}
	return s.regions.Upsert(frame, s.highlightClipboard, timeline.OriginUser)
}

// RegionAtTime returns the region containing the given playhead time.
// The quantizer's rounding absorbs the float slack a seconds round trip
// introduces; the underlying containment check is exact-integer.
func (s *Session) RegionAtTime(seconds float64) (region.Region, bool) {
	return s.regions.RegionAt(s.quantizer.FrameForTime(seconds))
}

// --- Render queries ---

// IsFrameOnKeyframe reports whether frame sits exactly on a crop keyframe or
// on a keyframe of an enabled region. Drives UI affordances such as enlarging
// a keyframe marker near the playhead.
func (s *Session) IsFrameOnKeyframe(frame int) bool {
	return s.crop.IsOnKeyframe(frame) || s.regions.IsOnKeyframe(frame)
}

// IsFrameInEnabledRegion reports whether frame falls inside an enabled
// highlight region.
func (s *Session) IsFrameInEnabledRegion(frame int) bool {
	return s.regions.IsFrameInEnabledRegion(frame)
}

// Validate checks every track invariant in the session. It never fails for
// states reached through the gesture methods.
func (s *Session) Validate() error {
	if err := s.crop.Validate(); err != nil {
		return fmt.Errorf("crop track: %w", err)
	}
	for _, r := range s.regions.Regions() {
		if err := r.Track.Validate(); err != nil {
			return fmt.Errorf("region %s: %w", r.ID, err)
		}
	}
	return nil
}
