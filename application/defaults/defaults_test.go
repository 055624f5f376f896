package defaults

import "testing"

func TestCrop(t *testing.T) {
	payload := Crop(1920, 1080)

	if payload[FieldX] != 0.0 || payload[FieldY] != 0.0 {
		t.Errorf("crop origin = (%v, %v), want (0, 0)", payload[FieldX], payload[FieldY])
	}
	if payload[FieldWidth] != 1920.0 {
		t.Errorf("crop width = %v, want 1920", payload[FieldWidth])
	}
	if payload[FieldHeight] != 1080.0 {
		t.Errorf("crop height = %v, want 1080", payload[FieldHeight])
	}
}

func TestHighlight(t *testing.T) {
	payload := Highlight(1920, 1080, 0.15, "#FFD700", 0.35)

	if payload[FieldX] != 960.0 || payload[FieldY] != 540.0 {
		t.Errorf("highlight center = (%v, %v), want (960, 540)", payload[FieldX], payload[FieldY])
	}
	if payload[FieldRadiusX] != 288.0 {
		t.Errorf("radius x = %v, want 288", payload[FieldRadiusX])
	}
	if payload[FieldRadiusY] != 162.0 {
		t.Errorf("radius y = %v, want 162", payload[FieldRadiusY])
	}
	if payload[FieldColor] != "#FFD700" {
		t.Errorf("color = %v, want #FFD700", payload[FieldColor])
	}
	if payload[FieldOpacity] != 0.35 {
		t.Errorf("opacity = %v, want 0.35", payload[FieldOpacity])
	}
}

func TestHighlight_RatioFallback(t *testing.T) {
	payload := Highlight(1000, 1000, 0, "#FFD700", 0.35)

	if payload[FieldRadiusX] != 150.0 {
		t.Errorf("radius x = %v, want 150 with the fallback ratio", payload[FieldRadiusX])
	}
}
