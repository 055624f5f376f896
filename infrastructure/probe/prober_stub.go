//go:build !probe

package probe

import (
	"context"
	"fmt"

	"keyline/domain/media"
)

// Prober is a stub when GoCV/OpenCV is not available
type Prober struct{}

// New creates a stub prober (requires building with -tags=probe)
func New() *Prober {
	return &Prober{}
}

// Probe returns an error indicating probing is not available
func (p *Prober) Probe(ctx context.Context, path string) (media.Metadata, error) {
	return media.Metadata{}, fmt.Errorf("probing not available: build with '-tags=probe' and install OpenCV/GoCV")
}
