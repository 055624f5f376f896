package region

import (
	"testing"

	"keyline/domain/timeline"
)

func newTestManager() *Manager {
	// 10 s timeline at 30 fps with the default region sizing.
	return NewManager(300, Options{
		DefaultDurationFrames: 90,
		MinDurationFrames:     15,
	})
}

func highlightPayload() timeline.Payload {
	return timeline.Payload{"x": 960.0, "y": 540.0, "opacity": 0.35}
}

func TestManager_Create(t *testing.T) {
	tests := []struct {
		name      string
		atFrame   int
		wantOK    bool
		wantStart int
		wantEnd   int
	}{
		{name: "default span", atFrame: 30, wantOK: true, wantStart: 30, wantEnd: 120},
		{name: "negative frame clamps to zero", atFrame: -10, wantOK: true, wantStart: 0, wantEnd: 90},
		{name: "clamped span at timeline end", atFrame: 250, wantOK: true, wantStart: 250, wantEnd: 300},
		{name: "clamped below minimum duration", atFrame: 295, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			r, ok := m.Create(tt.atFrame, highlightPayload())

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				if len(m.Regions()) != 0 {
					t.Errorf("rejected creation left %d regions", len(m.Regions()))
				}
				return
			}

			if r.StartFrame != tt.wantStart || r.EndFrame != tt.wantEnd {
				t.Errorf("span = [%d, %d], want [%d, %d]", r.StartFrame, r.EndFrame, tt.wantStart, tt.wantEnd)
			}
			if r.ID == "" {
				t.Error("region has no id")
			}
			if !r.Enabled {
				t.Error("new region is disabled")
			}
			if err := r.Track.Validate(); err != nil {
				t.Errorf("new region track invalid: %v", err)
			}
			if selected, ok := m.Selected(); !ok || selected.ID != r.ID {
				t.Error("new region is not selected")
			}
		})
	}
}

func TestManager_Create_RejectsOverlap(t *testing.T) {
	m := newTestManager()
	if _, ok := m.Create(30, highlightPayload()); !ok {
		t.Fatal("first creation failed")
	}

	if _, ok := m.Create(100, highlightPayload()); ok {
		t.Error("overlapping creation succeeded")
	}
	// Regions may touch: [30,120] then [120,210].
	if _, ok := m.Create(120, highlightPayload()); !ok {
		t.Error("adjacent creation failed")
	}
}

func TestManager_MoveBoundary(t *testing.T) {
	tests := []struct {
		name      string
		which     Boundary
		target    int
		wantStart int
		wantEnd   int
	}{
		{name: "end drag within bounds", which: BoundaryEnd, target: 140, wantStart: 30, wantEnd: 140},
		{name: "end drag clamps to minimum duration", which: BoundaryEnd, target: 35, wantStart: 30, wantEnd: 45},
		{name: "end drag stops at right neighbour", which: BoundaryEnd, target: 200, wantStart: 30, wantEnd: 150},
		{name: "start drag within bounds", which: BoundaryStart, target: 50, wantStart: 50, wantEnd: 120},
		{name: "start drag clamps to minimum duration", which: BoundaryStart, target: 118, wantStart: 105, wantEnd: 120},
		{name: "start drag clamps to zero", which: BoundaryStart, target: -20, wantStart: 0, wantEnd: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			r, _ := m.Create(30, highlightPayload()) // [30, 120]
			m.Create(150, highlightPayload())        // [150, 240]

			if !m.MoveBoundary(r.ID, tt.which, tt.target) {
				t.Fatal("move rejected")
			}

			moved, _ := m.Region(r.ID)
			if moved.StartFrame != tt.wantStart || moved.EndFrame != tt.wantEnd {
				t.Errorf("span = [%d, %d], want [%d, %d]",
					moved.StartFrame, moved.EndFrame, tt.wantStart, tt.wantEnd)
			}
			// The permanent boundary keyframes follow the new span.
			if err := moved.Track.Validate(); err != nil {
				t.Errorf("track invalid after move: %v", err)
			}
			if moved.Track.StartFrame != tt.wantStart || moved.Track.EndFrame != tt.wantEnd {
				t.Errorf("track bounds = [%d, %d], want [%d, %d]",
					moved.Track.StartFrame, moved.Track.EndFrame, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestManager_MoveBoundary_StartStopsAtLeftNeighbour(t *testing.T) {
	m := newTestManager()
	m.Create(30, highlightPayload())          // [30, 120]
	r, _ := m.Create(150, highlightPayload()) // [150, 240]

	if !m.MoveBoundary(r.ID, BoundaryStart, 60) {
		t.Fatal("move rejected")
	}

	moved, _ := m.Region(r.ID)
	if moved.StartFrame != 120 {
		t.Errorf("start = %d, want 120 (left neighbour's end)", moved.StartFrame)
	}
}

func TestManager_MoveBoundary_UnknownRegion(t *testing.T) {
	m := newTestManager()
	if m.MoveBoundary("nope", BoundaryEnd, 100) {
		t.Error("move of unknown region succeeded")
	}
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager()
	r, _ := m.Create(30, highlightPayload())

	if !m.Delete(r.ID) {
		t.Fatal("delete rejected")
	}
	if len(m.Regions()) != 0 {
		t.Errorf("regions = %d, want 0", len(m.Regions()))
	}
	if _, ok := m.Selected(); ok {
		t.Error("deleted region is still selected")
	}
	if m.Delete(r.ID) {
		t.Error("second delete succeeded")
	}
}

func TestManager_RegionAt(t *testing.T) {
	m := newTestManager()
	r, _ := m.Create(30, highlightPayload()) // [30, 120]

	tests := []struct {
		name   string
		frame  int
		wantOK bool
	}{
		{name: "inside", frame: 60, wantOK: true},
		{name: "start boundary inclusive", frame: 30, wantOK: true},
		{name: "end boundary inclusive", frame: 120, wantOK: true},
		{name: "before", frame: 29, wantOK: false},
		{name: "after", frame: 121, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.RegionAt(tt.frame)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != r.ID {
				t.Errorf("got region %s, want %s", got.ID, r.ID)
			}
		})
	}
}

func TestManager_UpsertRouting(t *testing.T) {
	m := newTestManager()
	r, _ := m.Create(30, highlightPayload()) // [30, 120]

	if !m.Upsert(60, timeline.Payload{"opacity": 0.8}, timeline.OriginUser) {
		t.Fatal("upsert inside region rejected")
	}
	routed, _ := m.Region(r.ID)
	if !routed.Track.IsOnKeyframe(60) {
		t.Error("keyframe did not land in the containing region")
	}

	if m.Upsert(250, timeline.Payload{"opacity": 0.8}, timeline.OriginUser) {
		t.Error("upsert outside every region succeeded")
	}

	m.SetEnabled(r.ID, false)
	if m.Upsert(60, timeline.Payload{"opacity": 0.8}, timeline.OriginUser) {
		t.Error("upsert into a disabled region succeeded")
	}
	if m.IsFrameInEnabledRegion(60) {
		t.Error("frame reported inside an enabled region after disabling")
	}
	if m.IsOnKeyframe(60) {
		t.Error("disabled region still answers keyframe queries")
	}
}

func TestManager_RemoveKeyframe(t *testing.T) {
	m := newTestManager()
	m.Create(30, highlightPayload())
	m.Upsert(60, timeline.Payload{"opacity": 0.8}, timeline.OriginUser)

	if !m.RemoveKeyframe(60) {
		t.Error("interior keyframe removal rejected")
	}
	if m.RemoveKeyframe(30) {
		t.Error("permanent boundary keyframe removal succeeded")
	}
	if m.RemoveKeyframe(250) {
		t.Error("removal outside every region succeeded")
	}
}

func TestManager_Restore(t *testing.T) {
	m := newTestManager()

	makeRegion := func(id string, start, end int) Region {
		return Region{
			ID:         id,
			StartFrame: start,
			EndFrame:   end,
			Enabled:    true,
			Track:      timeline.NewTrack(m.TrackOptions()).Initialize(highlightPayload(), start, end),
		}
	}

	tests := []struct {
		name    string
		regions []Region
		wantOK  bool
	}{
		{
			name:    "valid set out of order",
			regions: []Region{makeRegion("b", 150, 240), makeRegion("a", 30, 120)},
			wantOK:  true,
		},
		{
			name:    "overlapping spans",
			regions: []Region{makeRegion("a", 30, 120), makeRegion("b", 100, 190)},
			wantOK:  false,
		},
		{
			name:    "out of range",
			regions: []Region{makeRegion("a", 250, 350)},
			wantOK:  false,
		},
		{
			name:    "missing id",
			regions: []Region{makeRegion("", 30, 120)},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			m.Create(0, highlightPayload()) // pre-existing state to be replaced or kept

			ok := m.Restore(tt.regions)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				if len(m.Regions()) != 1 {
					t.Errorf("rejected restore changed the manager: %d regions", len(m.Regions()))
				}
				return
			}

			regions := m.Regions()
			if len(regions) != len(tt.regions) {
				t.Fatalf("regions = %d, want %d", len(regions), len(tt.regions))
			}
			if regions[0].StartFrame > regions[1].StartFrame {
				t.Error("restored regions are not sorted by start frame")
			}
		})
	}
}
