package simple

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cochaviz/grubimage/internal/build"
	"github.com/cochaviz/grubimage/internal/image"
	"github.com/cochaviz/grubimage/internal/logging"
	"github.com/cochaviz/grubimage/internal/profile"
	"github.com/cochaviz/grubimage/internal/setup"
)

var DefaultProfilePath = profile.DefaultPath
var DefaultTool = image.DefaultTool

// Options selects the profile file and the per-invocation overrides applied on top of it.
type Options struct {
	ProfilePath string
	Overrides   profile.Profile
}

// BuildImage loads the profile, resolves it against kernelPath and runs the image build.
func BuildImage(ctx context.Context, kernelPath string, opts Options, logger *slog.Logger) (build.BuildOutput, error) {
	logger = logging.Ensure(logger).With("component", "config.simple")

	p, err := LoadProfile(opts)
	if err != nil {
		return build.BuildOutput{}, err
	}

	service := build.BuildService{
		Logger: logger.With("service", "build"),
		Builder: &image.Builder{
			Tool:   p.Tool,
			Runner: image.ExecRunner{},
		},
	}

	return service.Run(ctx, &build.BuildRequest{
		KernelPath: kernelPath,
		Profile:    p,
	})
}

// LoadProfile reads opts.ProfilePath (DefaultProfilePath when empty) and applies opts.Overrides.
func LoadProfile(opts Options) (profile.Profile, error) {
	path := opts.ProfilePath
	if path == "" {
		path = DefaultProfilePath
	}

	p, err := profile.Load(path)
	if err != nil {
		return profile.Profile{}, err
	}
	p = p.Merge(opts.Overrides)
	if err := p.Validate(); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

// CheckTools verifies that the ISO tool from the profile and its helpers are installed.
func CheckTools(opts Options, logger *slog.Logger) ([]setup.Status, error) {
	p, err := LoadProfile(opts)
	if err != nil {
		return nil, err
	}
	tool := p.Tool
	if tool == "" {
		tool = DefaultTool
	}

	setup.SetLogger(logging.Ensure(logger).With("component", "setup"))
	return setup.Verify(tool)
}

// Inspect lists the files inside a built image.
func Inspect(imagePath string) (image.Contents, error) {
	contents, err := image.Inspect(imagePath)
	if err != nil {
		return image.Contents{}, fmt.Errorf("inspect %s: %w", imagePath, err)
	}
	return contents, nil
}
