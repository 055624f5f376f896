//go:build probe

package probe

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"keyline/domain/media"
)

// Prober implements media.Prober using GoCV
type Prober struct{}

// New creates a new video metadata prober
func New() *Prober {
	return &Prober{}
}

// Probe reads frame rate, duration and dimensions from the video at path
func (p *Prober) Probe(ctx context.Context, path string) (media.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return media.Metadata{}, err
	}

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return media.Metadata{}, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	defer capture.Close()

	fps := capture.Get(gocv.VideoCaptureFPS)
	frameCount := int(capture.Get(gocv.VideoCaptureFrameCount))
	width := int(capture.Get(gocv.VideoCaptureFrameWidth))
	height := int(capture.Get(gocv.VideoCaptureFrameHeight))

	if fps <= 0 || frameCount <= 0 {
		return media.Metadata{}, fmt.Errorf("video %s reports no frames (fps=%.2f, frames=%d)", path, fps, frameCount)
	}

	return media.Metadata{
		FrameRate:       fps,
		DurationSeconds: float64(frameCount) / fps,
		FrameCount:      frameCount,
		Width:           width,
		Height:          height,
	}, nil
}
