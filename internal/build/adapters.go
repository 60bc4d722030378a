package build

import (
	"context"

	"github.com/cochaviz/grubimage/internal/image"
)

// ImageBuilder drives the staging pipeline to produce an ISO image.
type ImageBuilder interface {
	Build(ctx context.Context, req image.Request) error
}

// Ensure the image package builder satisfies the interface.
var _ ImageBuilder = (*image.Builder)(nil)
