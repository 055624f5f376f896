package media

import "context"

// Metadata carries the source video constants the engine quantizes against.
type Metadata struct {
	// FrameRate in frames per second.
	FrameRate float64

	// DurationSeconds is the total playable duration.
	DurationSeconds float64

	// FrameCount is the number of frames in the source.
	FrameCount int

	// Width and Height are the source dimensions in pixels, used by the
	// default payload calculators.
	Width  int
	Height int
}

// Prober defines the interface for reading metadata from a source video.
// This is a port implemented by infrastructure adapters; the engine itself
// never decodes video.
type Prober interface {
	// Probe reads the metadata of the video at path.
	Probe(ctx context.Context, path string) (Metadata, error)
}
