package timeline

import (
	"math"
	"testing"
)

func TestQuantizer_FrameForTime(t *testing.T) {
	tests := []struct {
		name    string
		fps     float64
		seconds float64
		want    int
	}{
		{name: "zero time", fps: 30, seconds: 0, want: 0},
		{name: "negative time clamps to zero", fps: 30, seconds: -1.5, want: 0},
		{name: "exact frame", fps: 30, seconds: 2.5, want: 75},
		{name: "rounds down", fps: 30, seconds: 0.016, want: 0},
		{name: "rounds up", fps: 30, seconds: 0.984, want: 30},
		{name: "ntsc rate", fps: 29.97, seconds: 10, want: 300},
		{name: "non-positive fps falls back to default", fps: 0, seconds: 1, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuantizer(tt.fps)
			if got := q.FrameForTime(tt.seconds); got != tt.want {
				t.Errorf("FrameForTime(%v) = %d, want %d", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestQuantizer_TimeForFrame(t *testing.T) {
	q := NewQuantizer(30)

	tests := []struct {
		name  string
		frame int
		want  float64
	}{
		{name: "frame zero", frame: 0, want: 0},
		{name: "negative frame", frame: -5, want: 0},
		{name: "one second", frame: 30, want: 1.0},
		{name: "fractional second", frame: 45, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.TimeForFrame(tt.frame); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TimeForFrame(%d) = %v, want %v", tt.frame, got, tt.want)
			}
		})
	}
}

func TestQuantizer_RoundTripIsExact(t *testing.T) {
	// Frame identity must survive an export/import round trip through seconds.
	for _, fps := range []float64{24, 25, 29.97, 30, 59.94, 60} {
		q := NewQuantizer(fps)
		for frame := 0; frame <= 600; frame++ {
			if got := q.FrameForTime(q.TimeForFrame(frame)); got != frame {
				t.Fatalf("fps %v: frame %d round-tripped to %d", fps, frame, got)
			}
		}
	}
}

func TestQuantizer_DurationFrames(t *testing.T) {
	q := NewQuantizer(30)
	if got := q.DurationFrames(3.0); got != 90 {
		t.Errorf("DurationFrames(3.0) = %d, want 90", got)
	}
}
