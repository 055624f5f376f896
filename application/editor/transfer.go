package editor

import (
	"fmt"

	"github.com/google/uuid"

	"keyline/domain/region"
	"keyline/domain/timeline"
	"keyline/infrastructure/store"
)

// Export produces the external, time-based representation of the session.
// Frame numbers convert to seconds through the session quantizer so that an
// import of the result reproduces identical frames.
func (s *Session) Export() *store.Document {
	doc := &store.Document{
		Version:   store.CurrentVersion,
		FrameRate: s.quantizer.FPS(),
		Duration:  s.meta.DurationSeconds,
		Crop:      s.exportKeyframes(s.crop.Keyframes),
		Regions:   []store.RegionRecord{},
	}

	for _, r := range s.regions.Regions() {
		doc.Regions = append(doc.Regions, store.RegionRecord{
			ID:        r.ID,
			StartTime: s.quantizer.TimeForFrame(r.StartFrame),
			EndTime:   s.quantizer.TimeForFrame(r.EndFrame),
			Enabled:   r.Enabled,
			Keyframes: s.exportKeyframes(r.Track.Keyframes),
		})
	}
	return doc
}

// Import replaces the session's tracks with the contents of an externally
// supplied document. The load is atomic: a document that cannot be restored
// (too few keyframes, duplicate or out-of-range frames, overlapping regions)
// leaves the session unchanged and returns an error for the host to report
// as corrupt data. It never panics or escalates.
func (s *Session) Import(doc *store.Document) error {
	crop := s.crop
	if len(doc.Crop) > 0 {
		restored, ok := s.crop.Restore(s.importKeyframes(doc.Crop), 0, s.endFrame)
		if !ok {
			return fmt.Errorf("corrupt timeline document: invalid crop keyframes")
		}
		crop = restored
	}

	restored := make([]region.Region, 0, len(doc.Regions))
	for _, rec := range doc.Regions {
		start := s.quantizer.FrameForTime(rec.StartTime)
		end := s.quantizer.FrameForTime(rec.EndTime)

		track, ok := timeline.NewTrack(s.regions.TrackOptions()).
			Restore(s.importKeyframes(rec.Keyframes), start, end)
		if !ok {
			return fmt.Errorf("corrupt timeline document: invalid keyframes in region %q", rec.ID)
		}

		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		restored = append(restored, region.Region{
			ID:         id,
			StartFrame: start,
			EndFrame:   end,
			Enabled:    rec.Enabled,
			Track:      track,
		})
	}

	if !s.regions.Restore(restored) {
		return fmt.Errorf("corrupt timeline document: overlapping or out-of-range regions")
	}
	s.crop = crop
	return nil
}

func (s *Session) exportKeyframes(kfs []timeline.Keyframe) []store.KeyframeRecord {
	records := make([]store.KeyframeRecord, 0, len(kfs))
	for _, kf := range kfs {
		records = append(records, store.KeyframeRecord{
			Time:   s.quantizer.TimeForFrame(kf.Frame),
			Fields: kf.Payload.Clone(),
		})
	}
	return records
}

func (s *Session) importKeyframes(records []store.KeyframeRecord) []timeline.Keyframe {
	kfs := make([]timeline.Keyframe, 0, len(records))
	for _, rec := range records {
		kfs = append(kfs, timeline.Keyframe{
			Frame:   s.quantizer.FrameForTime(rec.Time),
			Origin:  timeline.OriginUser,
			Payload: timeline.Payload(rec.Fields).Clone(),
		})
	}
	return kfs
}
