package region

import (
	"sort"

	"github.com/google/uuid"

	"keyline/domain/timeline"
)

// Boundary names the region edge a drag gesture is moving.
type Boundary string

const (
	BoundaryStart Boundary = "start"
	BoundaryEnd   Boundary = "end"
)

// Default region sizing in frames, used when Options leaves them unset.
// Like the snap tolerance, these are empirically tuned values.
const (
	DefaultDurationFrames    = 90
	DefaultMinDurationFrames = 15
)

// Options carries the region tunables.
type Options struct {
	// DefaultDurationFrames is the span a freshly created region covers.
	DefaultDurationFrames int

	// MinDurationFrames is the shortest span a region may be created with or
	// shrunk to.
	MinDurationFrames int

	// Track configures the keyframe track each region owns.
	Track timeline.Options
}

func (o Options) defaultDuration() int {
	if o.DefaultDurationFrames > 0 {
		return o.DefaultDurationFrames
	}
	return DefaultDurationFrames
}

func (o Options) minDuration() int {
	if o.MinDurationFrames > 0 {
		return o.MinDurationFrames
	}
	return DefaultMinDurationFrames
}

// Manager owns zero or more independent time regions, each wrapping its own
// keyframe track. It enforces the region-level invariants: spans never
// intersect, never shrink below the minimum duration, and a region's
// Permanent boundary keyframes follow its boundaries. Like the track, every
// invalid user operation is rejected silently; callers must serialize access.
type Manager struct {
	regions    []Region // sorted by StartFrame
	endFrame   int
	opts       Options
	selectedID string
}

// NewManager creates an empty manager for a timeline ending at endFrame.
func NewManager(endFrame int, opts Options) *Manager {
	return &Manager{endFrame: endFrame, opts: opts}
}

// EndFrame returns the last valid frame of the timeline.
func (m *Manager) EndFrame() int {
	return m.endFrame
}

// TrackOptions returns the tunables applied to every region track, so that
// restored tracks are built with the same configuration.
func (m *Manager) TrackOptions() timeline.Options {
	return m.opts.Track
}

// Create adds a region spanning the default duration from atFrame, clamped to
// the timeline. It returns false when the clamped span is shorter than the
// minimum duration or intersects an existing region. The new region's track
// is seeded with Permanent boundary keyframes carrying defaultPayload, and
// the region becomes selected.
func (m *Manager) Create(atFrame int, defaultPayload timeline.Payload) (Region, bool) {
	start := atFrame
	if start < 0 {
		start = 0
	}
	end := start + m.opts.defaultDuration()
	if end > m.endFrame {
		end = m.endFrame
	}
	if end-start < m.opts.minDuration() {
		return Region{}, false
	}
	for _, r := range m.regions {
		if r.overlaps(start, end) {
			return Region{}, false
		}
	}

	r := Region{
		ID:         uuid.NewString(),
		StartFrame: start,
		EndFrame:   end,
		Enabled:    true,
		Track:      timeline.NewTrack(m.opts.Track).Initialize(defaultPayload, start, end),
	}
	m.regions = append(m.regions, r)
	m.sortRegions()
	m.selectedID = r.ID
	return r, true
}

// MoveBoundary drags one edge of a region to targetFrame. The target is
// clamped to preserve the minimum duration against the region's opposite
// boundary, then against the nearest neighbouring region on that side; a
// moved boundary may touch an adjacent region but never cross into it. The
// corresponding Permanent keyframe in the region's track is relocated to the
// new boundary frame.
func (m *Manager) MoveBoundary(id string, which Boundary, targetFrame int) bool {
	i := m.find(id)
	if i < 0 {
		return false
	}
	r := m.regions[i]

	switch which {
	case BoundaryStart:
		if max := r.EndFrame - m.opts.minDuration(); targetFrame > max {
			targetFrame = max
		}
		if targetFrame < 0 {
			targetFrame = 0
		}
		for _, other := range m.regions {
			if other.ID == id || other.EndFrame > r.StartFrame {
				continue
			}
			if other.EndFrame > targetFrame {
				targetFrame = other.EndFrame
			}
		}
		r.StartFrame = targetFrame
	case BoundaryEnd:
		if min := r.StartFrame + m.opts.minDuration(); targetFrame < min {
			targetFrame = min
		}
		if targetFrame > m.endFrame {
			targetFrame = m.endFrame
		}
		for _, other := range m.regions {
			if other.ID == id || other.StartFrame < r.EndFrame {
				continue
			}
			if other.StartFrame < targetFrame {
				targetFrame = other.StartFrame
			}
		}
		r.EndFrame = targetFrame
	default:
		return false
	}

	r.Track = r.Track.SetBounds(r.StartFrame, r.EndFrame)
	m.regions[i] = r
	m.sortRegions()
	return true
}

// Delete removes a region and its track.
func (m *Manager) Delete(id string) bool {
	i := m.find(id)
	if i < 0 {
		return false
	}
	m.regions = append(m.regions[:i], m.regions[i+1:]...)
	if m.selectedID == id {
		m.selectedID = ""
	}
	return true
}

// SetEnabled toggles a region. A disabled region keeps its track but is
// excluded from interpolation queries and rejects keyframe writes.
func (m *Manager) SetEnabled(id string, enabled bool) bool {
	i := m.find(id)
	if i < 0 {
		return false
	}
	m.regions[i].Enabled = enabled
	return true
}

// RegionAt returns the region whose span contains frame, boundary frames
// included. By the non-overlap invariant at most one region matches except
// exactly where two regions touch, where the earlier one wins.
func (m *Manager) RegionAt(frame int) (Region, bool) {
	for _, r := range m.regions {
		if r.Contains(frame) {
			return r, true
		}
	}
	return Region{}, false
}

// Region returns a region by id.
func (m *Manager) Region(id string) (Region, bool) {
	if i := m.find(id); i >= 0 {
		return m.regions[i], true
	}
	return Region{}, false
}

// Regions returns a copy of all regions in start order.
func (m *Manager) Regions() []Region {
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}

// Upsert writes a keyframe into the enabled region containing frame.
// It is rejected when no region contains the frame or the region is disabled.
func (m *Manager) Upsert(frame int, payload timeline.Payload, origin timeline.Origin) bool {
	for i, r := range m.regions {
		if !r.Contains(frame) {
			continue
		}
		if !r.Enabled {
			return false
		}
		m.regions[i].Track = r.Track.Upsert(frame, payload, origin)
		return true
	}
	return false
}

// RemoveKeyframe deletes the keyframe at frame from the region owning it,
// subject to the track's own deletion rules.
func (m *Manager) RemoveKeyframe(frame int) bool {
	for i, r := range m.regions {
		if !r.Contains(frame) {
			continue
		}
		track, removed := r.Track.Remove(frame)
		m.regions[i].Track = track
		return removed
	}
	return false
}

// IsOnKeyframe reports whether any enabled region has a keyframe exactly at
// frame.
func (m *Manager) IsOnKeyframe(frame int) bool {
	for _, r := range m.regions {
		if r.Enabled && r.Track.IsOnKeyframe(frame) {
			return true
		}
	}
	return false
}

// IsFrameInEnabledRegion reports whether frame falls inside an enabled
// region.
func (m *Manager) IsFrameInEnabledRegion(frame int) bool {
	for _, r := range m.regions {
		if r.Enabled && r.Contains(frame) {
			return true
		}
	}
	return false
}

// Select marks a region as the current selection.
func (m *Manager) Select(id string) bool {
	if m.find(id) < 0 {
		return false
	}
	m.selectedID = id
	return true
}

// Selected returns the currently selected region, if any.
func (m *Manager) Selected() (Region, bool) {
	if m.selectedID == "" {
		return Region{}, false
	}
	return m.Region(m.selectedID)
}

// Restore atomically replaces all regions with an externally supplied set.
// The whole load is rejected, leaving the manager unchanged, when any span is
// invalid or out of range, any two spans intersect, or any track fails
// validation.
func (m *Manager) Restore(regions []Region) bool {
	restored := make([]Region, len(regions))
	copy(restored, regions)
	sort.Slice(restored, func(i, j int) bool {
		return restored[i].StartFrame < restored[j].StartFrame
	})

	for i, r := range restored {
		if r.ID == "" || r.StartFrame < 0 || r.StartFrame >= r.EndFrame || r.EndFrame > m.endFrame {
			return false
		}
		if err := r.Track.Validate(); err != nil {
			return false
		}
		if i > 0 && restored[i-1].EndFrame > r.StartFrame {
			return false
		}
	}

	m.regions = restored
	m.selectedID = ""
	return true
}

func (m *Manager) find(id string) int {
	for i, r := range m.regions {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) sortRegions() {
	sort.Slice(m.regions, func(i, j int) bool {
		return m.regions[i].StartFrame < m.regions[j].StartFrame
	})
}
