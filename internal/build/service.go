package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cochaviz/grubimage/internal/artifacts"
)

type BuildService struct {
	Logger  *slog.Logger
	Builder ImageBuilder
}

// Run resolves request into an image.Request and builds it. Errors from the
// builder are returned unwrapped so callers can match *image.IOError and
// *image.ToolFailedError directly.
func (s *BuildService) Run(ctx context.Context, request *BuildRequest) (BuildOutput, error) {
	if s.Builder == nil {
		return BuildOutput{}, errors.New("image builder is not configured")
	}
	if request == nil {
		return BuildOutput{}, errors.New("build request is required")
	}

	imageRequest, err := request.Profile.Request(request.KernelPath)
	if err != nil {
		return BuildOutput{}, err
	}

	output := BuildOutput{
		ID:      uuid.New().String(),
		Status:  BuildStatusRunning,
		Request: imageRequest,
	}

	logger := s.logger().With(
		"build_id", output.ID,
		"kernel", imageRequest.KernelPath,
	)
	logger.Info("starting image build",
		"label", imageRequest.Label,
		"stage_dir", imageRequest.StageDir,
		"output", imageRequest.OutputPath,
	)

	started := time.Now()
	if !request.RequestedAt.IsZero() {
		logger.Debug("build queued", "wait", started.Sub(request.RequestedAt))
	}

	err = s.Builder.Build(ctx, imageRequest)
	output.Duration = time.Since(started)
	if err != nil {
		output.Status = BuildStatusFailed
		logger.Debug("image build failed", "duration", output.Duration, "error", err)
		return output, err
	}

	imageArtifact, err := artifacts.Describe(imageRequest.OutputPath, artifacts.ImageArtifact, artifacts.ISOContentType)
	if err != nil {
		// The tool reported success; a missing image is only worth a warning.
		logger.Warn("unable to describe image", "output", imageRequest.OutputPath, "error", err)
	} else {
		imageArtifact.Metadata["label"] = imageRequest.Label
		imageArtifact.Metadata["build_id"] = output.ID
		output.Image = imageArtifact
	}

	output.Status = BuildStatusSucceeded
	logger.Info("image build completed",
		"duration", output.Duration,
		"image_uri", output.Image.URI,
		"size", output.Image.Size,
	)
	return output, nil
}

func (s BuildService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

