package build

import (
	"time"

	"github.com/cochaviz/grubimage/internal/artifacts"
	"github.com/cochaviz/grubimage/internal/image"
	"github.com/cochaviz/grubimage/internal/profile"
)

// BuildStatus captures overall lifecycle states for an image build run.
type BuildStatus string

// Supported build statuses.
const (
	BuildStatusRunning   BuildStatus = "running"
	BuildStatusSucceeded BuildStatus = "succeeded"
	BuildStatusFailed    BuildStatus = "failed"
)

// BuildRequest asks for an image of the kernel at KernelPath.
type BuildRequest struct {
	KernelPath  string
	Profile     profile.Profile
	RequestedAt time.Time
}

// BuildOutput captures the result of a build run.
type BuildOutput struct {
	ID       string
	Status   BuildStatus
	Request  image.Request
	Image    artifacts.Artifact
	Duration time.Duration
}
