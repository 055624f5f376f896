package editor

import (
	"strings"
	"testing"

	"keyline/application/defaults"
	"keyline/domain/media"
	"keyline/domain/region"
	"keyline/domain/timeline"
)

func testMetadata() media.Metadata {
	return media.Metadata{
		FrameRate:       30,
		DurationSeconds: 10,
		FrameCount:      301,
		Width:           1920,
		Height:          1080,
	}
}

func newTestSession() *Session {
	return NewSession(testMetadata(), nil)
}

func TestNewSession(t *testing.T) {
	s := newTestSession()

	if s.EndFrame() != 300 {
		t.Errorf("EndFrame() = %d, want 300", s.EndFrame())
	}

	crop := s.CropTrack()
	if err := crop.Validate(); err != nil {
		t.Fatalf("initial crop track invalid: %v", err)
	}
	start, _ := crop.KeyframeAt(0)
	if !start.Payload.Equal(defaults.Crop(1920, 1080)) {
		t.Errorf("initial crop payload = %v, want full frame", start.Payload)
	}
}

func TestNewSession_EndFrameFallbacks(t *testing.T) {
	tests := []struct {
		name string
		md   media.Metadata
		want int
	}{
		{name: "from duration", md: media.Metadata{FrameRate: 30, DurationSeconds: 2}, want: 60},
		{name: "from frame count", md: media.Metadata{FrameRate: 30, FrameCount: 120}, want: 119},
		{name: "degenerate source", md: media.Metadata{FrameRate: 30}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(tt.md, nil)
			if s.EndFrame() != tt.want {
				t.Errorf("EndFrame() = %d, want %d", s.EndFrame(), tt.want)
			}
		})
	}
}

func TestSession_CropEditing(t *testing.T) {
	s := newTestSession()

	s.UpsertCrop(150, timeline.Payload{"x": 100.0})

	if !s.IsFrameOnKeyframe(150) {
		t.Error("frame 150 not reported as a keyframe")
	}
	got := s.EvaluateCrop(150)
	if got["x"] != 100.0 {
		t.Errorf("EvaluateCrop(150) x = %v, want 100", got["x"])
	}

	if !s.RemoveCrop(150) {
		t.Error("interior crop keyframe removal rejected")
	}
	if s.RemoveCrop(0) {
		t.Error("boundary crop keyframe removal succeeded")
	}
}

func TestSession_TrimCropRange(t *testing.T) {
	md := media.Metadata{FrameRate: 30, DurationSeconds: 3, Width: 1920, Height: 1080}
	s := NewSession(md, nil)
	s.UpsertCrop(30, timeline.Payload{"x": 100.0})
	s.UpsertCrop(60, timeline.Payload{"x": 120.0})

	if !s.TrimCropRange(25, 65) {
		t.Fatal("trim rejected")
	}

	track := s.CropTrack()
	if track.State != timeline.StateTrimming {
		t.Errorf("State = %v, want %v", track.State, timeline.StateTrimming)
	}
	for _, frame := range []int{25, 65} {
		kf, ok := track.KeyframeAt(frame)
		if !ok {
			t.Fatalf("missing continuity keyframe at frame %d", frame)
		}
		if kf.Origin != timeline.OriginTrim {
			t.Errorf("continuity keyframe at %d has origin %v, want %v", frame, kf.Origin, timeline.OriginTrim)
		}
	}

	s.CleanupTrim()
	track = s.CropTrack()
	if len(track.Keyframes) != 2 {
		t.Errorf("keyframes after cleanup = %d, want 2", len(track.Keyframes))
	}
	if track.State != timeline.StateInitialized {
		t.Errorf("State after cleanup = %v, want %v", track.State, timeline.StateInitialized)
	}
}

func TestSession_TrimCropRange_ReseedsCaughtBoundary(t *testing.T) {
	md := media.Metadata{FrameRate: 30, DurationSeconds: 3, Width: 1920, Height: 1080}
	s := NewSession(md, nil)
	s.UpsertCrop(30, timeline.Payload{"x": 100.0})

	if !s.TrimCropRange(0, 30) {
		t.Fatal("trim rejected")
	}

	start, ok := s.CropTrack().KeyframeAt(0)
	if !ok {
		t.Fatal("start boundary keyframe not re-seeded")
	}
	if start.Origin != timeline.OriginPermanent {
		t.Errorf("re-seeded boundary origin = %v, want %v", start.Origin, timeline.OriginPermanent)
	}
}

func TestSession_TrimCropRange_RejectsInvalidRanges(t *testing.T) {
	s := newTestSession()

	if s.TrimCropRange(50, 40) {
		t.Error("inverted range accepted")
	}
	if s.TrimCropRange(400, 500) {
		t.Error("range past the timeline accepted")
	}
}

func TestSession_CropClipboard(t *testing.T) {
	md := media.Metadata{FrameRate: 30, DurationSeconds: 3, Width: 1920, Height: 1080}
	s := NewSession(md, nil)

	if s.PasteCrop(45) {
		t.Error("paste succeeded with an empty clipboard")
	}

	s.UpsertCrop(90, timeline.Payload{"x": 200.0})
	s.UpsertCrop(0, timeline.Payload{"x": 100.0})
	s.CopyCrop(45)

	if !s.PasteCrop(60) {
		t.Fatal("paste rejected")
	}
	kf, ok := s.CropTrack().KeyframeAt(60)
	if !ok {
		t.Fatal("pasted keyframe missing")
	}
	if kf.Payload["x"] != 150.0 {
		t.Errorf("pasted x = %v, want the interpolated 150", kf.Payload["x"])
	}
}

func TestSession_HighlightEditing(t *testing.T) {
	s := newTestSession()

	r, ok := s.CreateRegion(60)
	if !ok {
		t.Fatal("region creation rejected")
	}
	if r.StartFrame != 60 || r.EndFrame != 150 {
		t.Errorf("region span = [%d, %d], want [60, 150] (3 s default)", r.StartFrame, r.EndFrame)
	}

	if !s.UpsertHighlight(100, timeline.Payload{"opacity": 0.8}) {
		t.Error("highlight write inside the region rejected")
	}
	if s.UpsertHighlight(250, timeline.Payload{"opacity": 0.8}) {
		t.Error("highlight write outside every region succeeded")
	}

	if _, ok := s.EvaluateHighlight(100); !ok {
		t.Error("no highlight value inside the region")
	}
	if _, ok := s.EvaluateHighlight(250); ok {
		t.Error("highlight value outside every region")
	}

	if !s.SetRegionEnabled(r.ID, false) {
		t.Fatal("disabling rejected")
	}
	if _, ok := s.EvaluateHighlight(100); ok {
		t.Error("disabled region still answers highlight queries")
	}
	if s.IsFrameInEnabledRegion(100) {
		t.Error("frame reported inside an enabled region after disabling")
	}
}

func TestSession_HighlightClipboard(t *testing.T) {
	s := newTestSession()
	s.CreateRegion(60) // [60, 150]

	if s.CopyHighlight(250) {
		t.Error("copy outside every region succeeded")
	}
	if !s.CopyHighlight(100) {
		t.Fatal("copy inside the region rejected")
	}

	if s.PasteHighlight(250) {
		t.Error("paste outside every region succeeded")
	}
	if !s.PasteHighlight(120) {
		t.Error("paste inside the region rejected")
	}
}

func TestSession_RegionAtTime(t *testing.T) {
	s := newTestSession()
	created, _ := s.CreateRegion(60) // [60, 150]

	r, ok := s.RegionAtTime(3.0) // frame 90
	if !ok || r.ID != created.ID {
		t.Errorf("RegionAtTime(3.0) = (%v, %v), want the created region", r.ID, ok)
	}
	if _, ok := s.RegionAtTime(9.0); ok {
		t.Error("RegionAtTime(9.0) found a region outside every span")
	}
}

func TestSession_ExportImportRoundTrip(t *testing.T) {
	s := newTestSession()
	s.UpsertCrop(150, timeline.Payload{"x": 100.0, "y": 50.0, "width": 1280.0, "height": 720.0})
	first, _ := s.CreateRegion(60) // [60, 150]
	s.UpsertHighlight(100, timeline.Payload{"opacity": 0.8})
	second, _ := s.CreateRegion(200) // [200, 290]
	s.SetRegionEnabled(second.ID, false)

	doc := s.Export()
	if doc.FrameRate != 30 || doc.Duration != 10 {
		t.Fatalf("document header = (%v, %v), want (30, 10)", doc.FrameRate, doc.Duration)
	}

	restored := newTestSession()
	if err := restored.Import(doc); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}

	// Frame identity survives the seconds round trip.
	got := restored.CropTrack()
	want := s.CropTrack()
	if len(got.Keyframes) != len(want.Keyframes) {
		t.Fatalf("crop keyframes = %d, want %d", len(got.Keyframes), len(want.Keyframes))
	}
	for i := range want.Keyframes {
		if got.Keyframes[i].Frame != want.Keyframes[i].Frame {
			t.Errorf("crop keyframe %d at frame %d, want %d", i, got.Keyframes[i].Frame, want.Keyframes[i].Frame)
		}
		if !got.Keyframes[i].Payload.Equal(want.Keyframes[i].Payload) {
			t.Errorf("crop keyframe %d payload = %v, want %v", i, got.Keyframes[i].Payload, want.Keyframes[i].Payload)
		}
	}

	regions := restored.Regions()
	if len(regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(regions))
	}
	if regions[0].ID != first.ID || regions[0].StartFrame != 60 || regions[0].EndFrame != 150 {
		t.Errorf("region 0 = %s [%d, %d], want %s [60, 150]",
			regions[0].ID, regions[0].StartFrame, regions[0].EndFrame, first.ID)
	}
	if !regions[0].Track.IsOnKeyframe(100) {
		t.Error("highlight keyframe at frame 100 lost in the round trip")
	}
	if regions[1].Enabled {
		t.Error("disabled flag lost in the round trip")
	}

	if err := restored.Validate(); err != nil {
		t.Errorf("restored session fails validation: %v", err)
	}
}

func TestSession_Import_RejectsCorruptDocuments(t *testing.T) {
	s := newTestSession()
	s.CreateRegion(60)

	doc := s.Export()
	// Overlapping spans make the document corrupt.
	doc.Regions = append(doc.Regions, doc.Regions[0])

	fresh := newTestSession()
	err := fresh.Import(doc)
	if err == nil {
		t.Fatal("Import() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "corrupt timeline document") {
		t.Errorf("Import() error = %v, want error containing %q", err, "corrupt timeline document")
	}
	if len(fresh.Regions()) != 0 {
		t.Errorf("rejected import changed the session: %d regions", len(fresh.Regions()))
	}
}

func TestSession_Import_EmptyCropKeepsDefault(t *testing.T) {
	doc := newTestSession().Export()
	doc.Crop = nil

	s := newTestSession()
	if err := s.Import(doc); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if err := s.CropTrack().Validate(); err != nil {
		t.Errorf("crop track invalid after import: %v", err)
	}
}

func TestSession_MoveRegionBoundary(t *testing.T) {
	s := newTestSession()
	r, _ := s.CreateRegion(60) // [60, 150]

	if !s.MoveRegionBoundary(r.ID, region.BoundaryEnd, 180) {
		t.Fatal("boundary move rejected")
	}
	moved := s.Regions()[0]
	if moved.EndFrame != 180 {
		t.Errorf("end = %d, want 180", moved.EndFrame)
	}

	if !s.DeleteRegion(r.ID) {
		t.Error("region deletion rejected")
	}
	if s.DeleteRegion(r.ID) {
		t.Error("second deletion succeeded")
	}
}
