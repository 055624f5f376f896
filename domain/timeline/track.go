package timeline

import (
	"fmt"
	"sort"
)

// State is the lifecycle state of a Track.
type State string

const (
	// StateUninitialized is the zero state before Initialize seeds the track.
	StateUninitialized State = "uninitialized"

	// StateInitialized means the track holds at least its two boundary
	// keyframes and is ready for editing.
	StateInitialized State = "initialized"

	// StateEditing is entered on any keyframe mutation.
	StateEditing State = "editing"

	// StateTrimming is held only for the duration of a trim-range deletion,
	// until trim-origin keyframes are reconciled by CleanupTrim.
	StateTrimming State = "trimming"
)

// DefaultSnapToleranceFrames is the number of frames within which an upsert
// snaps onto an existing keyframe instead of creating a near-duplicate.
// The value is empirically tuned, not structurally required.
const DefaultSnapToleranceFrames = 5

// Options carries the track tunables.
type Options struct {
	// SnapToleranceFrames overrides DefaultSnapToleranceFrames when positive.
	SnapToleranceFrames int
}

func (o Options) snapTolerance() int {
	if o.SnapToleranceFrames > 0 {
		return o.SnapToleranceFrames
	}
	return DefaultSnapToleranceFrames
}

// Track is a single ordered collection of keyframes for one editable track,
// e.g. a crop track or one highlight region's track. Every transition is a
// pure function from the current value to a new value; callers must feed each
// result into the next call. Invalid user operations return the track
// unchanged rather than failing.
type Track struct {
	// Keyframes is always sorted ascending by frame with unique frames.
	Keyframes []Keyframe

	// StartFrame and EndFrame are the track's logical edges. Both carry a
	// Permanent keyframe once the track is initialized.
	StartFrame int
	EndFrame   int

	// EndExplicit reports whether the end keyframe has been written directly.
	// Until then the end payload mirrors the start payload.
	EndExplicit bool

	State State

	opts Options
}

// NewTrack creates an uninitialized track with the given tunables.
func NewTrack(opts Options) Track {
	return Track{State: StateUninitialized, opts: opts}
}

// Initialize resets the track to two Permanent boundary keyframes at
// startFrame and endFrame, both carrying defaultPayload.
func (t Track) Initialize(defaultPayload Payload, startFrame, endFrame int) Track {
	if startFrame < 0 {
		startFrame = 0
	}
	if endFrame <= startFrame {
		endFrame = startFrame + 1
	}
	return Track{
		Keyframes: []Keyframe{
			{Frame: startFrame, Origin: OriginPermanent, Payload: defaultPayload.Clone()},
			{Frame: endFrame, Origin: OriginPermanent, Payload: defaultPayload.Clone()},
		},
		StartFrame: startFrame,
		EndFrame:   endFrame,
		State:      StateInitialized,
		opts:       t.opts,
	}
}

// Upsert writes payload at the requested frame. An exact hit updates the
// existing keyframe in place; a keyframe merely nearby (within the snap
// tolerance) is relocated to the requested frame so that fine scrubbing never
// accumulates near-duplicates while the edited keyframe always lands exactly
// where the user is positioned. Writes at the track boundaries are forced to
// Permanent origin, and while the end is not explicit, writing the start
// keyframe mirrors its payload onto the end keyframe.
func (t Track) Upsert(frame int, payload Payload, origin Origin) Track {
	if t.State == StateUninitialized {
		return t
	}
	frame = clampFrame(frame, t.StartFrame, t.EndFrame)

	resolved := origin
	if frame == t.StartFrame || frame == t.EndFrame {
		resolved = OriginPermanent
	}

	kfs := make([]Keyframe, len(t.Keyframes))
	copy(kfs, t.Keyframes)

	if i := indexOfFrame(kfs, frame); i >= 0 {
		kfs[i].Payload = payload.Clone()
		if kfs[i].Origin != OriginPermanent {
			kfs[i].Origin = resolved
		}
	} else if i := nearestMovable(kfs, frame, t.opts.snapTolerance()); i >= 0 {
		kfs[i] = Keyframe{Frame: frame, Origin: resolved, Payload: payload.Clone()}
		sortKeyframes(kfs)
	} else {
		kfs = append(kfs, Keyframe{Frame: frame, Origin: resolved, Payload: payload.Clone()})
		sortKeyframes(kfs)
	}

	next := t
	next.Keyframes = kfs

	if frame == t.StartFrame && !t.EndExplicit {
		if j := indexOfFrame(kfs, t.EndFrame); j >= 0 {
			kfs[j].Payload = payload.Clone()
		}
	}
	if frame == t.EndFrame && t.EndFrame != t.StartFrame {
		next.EndExplicit = true
	}
	if next.State == StateInitialized {
		next.State = StateEditing
	}
	return next
}

// Remove deletes the keyframe at frame. It is a no-op when the keyframe is
// Permanent, does not exist, or removal would leave fewer than two keyframes;
// the second return value reports whether anything was removed.
func (t Track) Remove(frame int) (Track, bool) {
	i := indexOfFrame(t.Keyframes, frame)
	if i < 0 {
		return t, false
	}
	if t.Keyframes[i].Origin == OriginPermanent {
		return t, false
	}
	if len(t.Keyframes)-1 < 2 {
		return t, false
	}

	kfs := make([]Keyframe, 0, len(t.Keyframes)-1)
	kfs = append(kfs, t.Keyframes[:i]...)
	kfs = append(kfs, t.Keyframes[i+1:]...)

	next := t
	next.Keyframes = kfs
	next.State = StateEditing
	return next, true
}

// DeleteRange removes every keyframe in [startFrame, endFrame] inclusive,
// boundary keyframes included, and transitions to StateTrimming. The caller
// is responsible for re-inserting Permanent boundary keyframes at the track's
// new logical edges afterwards.
func (t Track) DeleteRange(startFrame, endFrame int) Track {
	if t.State == StateUninitialized {
		return t
	}
	kfs := make([]Keyframe, 0, len(t.Keyframes))
	for _, kf := range t.Keyframes {
		if kf.Frame >= startFrame && kf.Frame <= endFrame {
			continue
		}
		kfs = append(kfs, kf)
	}
	next := t
	next.Keyframes = kfs
	next.State = StateTrimming
	return next
}

// CleanupTrim removes all trim-origin keyframes and returns the track to
// StateInitialized.
func (t Track) CleanupTrim() Track {
	kfs := make([]Keyframe, 0, len(t.Keyframes))
	for _, kf := range t.Keyframes {
		if kf.Origin == OriginTrim {
			continue
		}
		kfs = append(kfs, kf)
	}
	next := t
	next.Keyframes = kfs
	next.State = StateInitialized
	return next
}

// SetBounds relocates the track's Permanent boundary keyframes to new start
// and end frames, preserving their payloads. Keyframes falling outside the
// new span are dropped. Used when a region boundary is dragged.
func (t Track) SetBounds(startFrame, endFrame int) Track {
	if t.State == StateUninitialized || startFrame >= endFrame {
		return t
	}
	kfs := make([]Keyframe, 0, len(t.Keyframes))
	for _, kf := range t.Keyframes {
		switch {
		case kf.Origin == OriginPermanent && kf.Frame == t.StartFrame:
			kf.Frame = startFrame
		case kf.Origin == OriginPermanent && kf.Frame == t.EndFrame:
			kf.Frame = endFrame
		case kf.Frame <= startFrame || kf.Frame >= endFrame:
			continue
		}
		kfs = append(kfs, kf)
	}
	sortKeyframes(kfs)

	next := t
	next.Keyframes = kfs
	next.StartFrame = startFrame
	next.EndFrame = endFrame
	return next
}

// Restore bulk-loads an externally supplied keyframe array, re-sorting
// defensively. Malformed input (fewer than two keyframes, duplicate frames,
// missing boundary frames) leaves the track unchanged and returns false.
// End explicitness is recomputed by comparing the first and last payloads.
func (t Track) Restore(keyframes []Keyframe, startFrame, endFrame int) (Track, bool) {
	if len(keyframes) < 2 || startFrame < 0 || endFrame <= startFrame {
		return t, false
	}

	kfs := make([]Keyframe, len(keyframes))
	copy(kfs, keyframes)
	sortKeyframes(kfs)

	for i := 1; i < len(kfs); i++ {
		if kfs[i].Frame == kfs[i-1].Frame {
			return t, false
		}
	}
	if kfs[0].Frame != startFrame || kfs[len(kfs)-1].Frame != endFrame {
		return t, false
	}

	for i := range kfs {
		kfs[i].Payload = kfs[i].Payload.Clone()
		if i == 0 || i == len(kfs)-1 {
			kfs[i].Origin = OriginPermanent
		} else if kfs[i].Origin == OriginPermanent {
			kfs[i].Origin = OriginUser
		}
	}

	return Track{
		Keyframes:   kfs,
		StartFrame:  startFrame,
		EndFrame:    endFrame,
		EndExplicit: !kfs[0].Payload.Equal(kfs[len(kfs)-1].Payload),
		State:       StateInitialized,
		opts:        t.opts,
	}, true
}

// KeyframeAt returns the keyframe sitting exactly at frame.
func (t Track) KeyframeAt(frame int) (Keyframe, bool) {
	if i := indexOfFrame(t.Keyframes, frame); i >= 0 {
		return t.Keyframes[i], true
	}
	return Keyframe{}, false
}

// IsOnKeyframe reports whether a keyframe sits exactly at frame.
func (t Track) IsOnKeyframe(frame int) bool {
	return indexOfFrame(t.Keyframes, frame) >= 0
}

// Validate checks the track invariants. A violation indicates an engine
// defect, not a user error; the editing operations can never produce one.
func (t Track) Validate() error {
	if t.State == StateUninitialized || t.State == StateTrimming {
		return nil
	}
	if len(t.Keyframes) < 2 {
		return fmt.Errorf("track has %d keyframes, need at least 2", len(t.Keyframes))
	}
	for i := 1; i < len(t.Keyframes); i++ {
		if t.Keyframes[i].Frame <= t.Keyframes[i-1].Frame {
			return fmt.Errorf("keyframes out of order at index %d (frame %d after %d)",
				i, t.Keyframes[i].Frame, t.Keyframes[i-1].Frame)
		}
	}
	first := t.Keyframes[0]
	if first.Frame != t.StartFrame || first.Origin != OriginPermanent {
		return fmt.Errorf("missing permanent start keyframe at frame %d", t.StartFrame)
	}
	i := indexOfFrame(t.Keyframes, t.EndFrame)
	if i < 0 || t.Keyframes[i].Origin != OriginPermanent {
		return fmt.Errorf("missing permanent end keyframe at frame %d", t.EndFrame)
	}
	for _, kf := range t.Keyframes[1:] {
		if kf.Origin == OriginPermanent && kf.Frame != t.EndFrame {
			return fmt.Errorf("interior keyframe at frame %d has permanent origin", kf.Frame)
		}
	}
	return nil
}

func indexOfFrame(kfs []Keyframe, frame int) int {
	for i, kf := range kfs {
		if kf.Frame == frame {
			return i
		}
	}
	return -1
}

// nearestMovable finds the closest non-Permanent keyframe within tolerance.
// Permanent boundary keyframes never snap away from their frame.
func nearestMovable(kfs []Keyframe, frame, tolerance int) int {
	best := -1
	bestDist := tolerance + 1
	for i, kf := range kfs {
		if kf.Origin == OriginPermanent {
			continue
		}
		dist := kf.Frame - frame
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

func sortKeyframes(kfs []Keyframe) {
	sort.Slice(kfs, func(i, j int) bool {
		return kfs[i].Frame < kfs[j].Frame
	})
}

func clampFrame(frame, min, max int) int {
	if frame < min {
		return min
	}
	if frame > max {
		return max
	}
	return frame
}
