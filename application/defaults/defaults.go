// Package defaults computes the initial payloads a fresh track or region is
// seeded with, given the source video dimensions. Keeping these as explicit
// inputs (rather than ambient application state) keeps the engine pure and
// independently testable.
package defaults

import "keyline/domain/timeline"

// Crop payload field names.
const (
	FieldX      = "x"
	FieldY      = "y"
	FieldWidth  = "width"
	FieldHeight = "height"
)

// Highlight payload field names.
const (
	FieldRadiusX = "radius_x"
	FieldRadiusY = "radius_y"
	FieldColor   = "color"
	FieldOpacity = "opacity"
)

// Crop returns the full-frame crop rectangle for a source of the given
// dimensions.
func Crop(videoWidth, videoHeight int) timeline.Payload {
	return timeline.Payload{
		FieldX:      0.0,
		FieldY:      0.0,
		FieldWidth:  float64(videoWidth),
		FieldHeight: float64(videoHeight),
	}
}

// Highlight returns an ellipse centered in a source of the given dimensions,
// with radii sized as radiusRatio of each dimension and the configured
// appearance.
func Highlight(videoWidth, videoHeight int, radiusRatio float64, color string, opacity float64) timeline.Payload {
	if radiusRatio <= 0 {
		radiusRatio = 0.15
	}
	return timeline.Payload{
		FieldX:       float64(videoWidth) / 2,
		FieldY:       float64(videoHeight) / 2,
		FieldRadiusX: float64(videoWidth) * radiusRatio,
		FieldRadiusY: float64(videoHeight) * radiusRatio,
		FieldColor:   color,
		FieldOpacity: opacity,
	}
}
