package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	config "github.com/cochaviz/grubimage/config"
	"github.com/cochaviz/grubimage/internal/image"
	"github.com/cochaviz/grubimage/internal/logging"
	"github.com/cochaviz/grubimage/internal/profile"
)

const defaultLogLevel = "warning"

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var levelVar slog.LevelVar
	levelVar.Set(slog.LevelWarn)

	logger := logging.NewCLI(os.Stderr, &levelVar)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(logger, &levelVar)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(reportError(os.Stderr, logger, err))
	}
}

// reportError renders err for the user and returns the process exit code.
// Tool stderr is forwarded byte for byte ahead of the summary line.
func reportError(w io.Writer, logger *slog.Logger, err error) int {
	if errors.Is(err, context.Canceled) {
		logger.Warn("command interrupted", "error", err)
		return 130
	}

	var toolErr *image.ToolFailedError
	if errors.As(err, &toolErr) {
		_, _ = w.Write(toolErr.Stderr)
	}
	logger.Error("command execution failed", "error", err)
	return 1
}

func newRootCommand(logger *slog.Logger, levelVar *slog.LevelVar) *cobra.Command {
	logLevel := defaultLogLevel

	root := &cobra.Command{
		Use:           "grubimage",
		Short:         "Build bootable GRUB2 ISO images from multiboot2 kernels",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetVersionTemplate("grubimage {{.Version}}\n")

	root.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Set log verbosity (debug, info, warning, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		if levelVar != nil {
			levelVar.Set(level)
		}
		return nil
	}

	root.AddCommand(
		newBuildCommand(logger),
		newRunnerCommand(logger, levelVar),
		newInspectCommand(),
		newCheckCommand(logger),
	)
	return root
}

func newBuildCommand(logger *slog.Logger) *cobra.Command {
	var (
		profilePath string
		overrides   profile.Profile
	)

	cmd := &cobra.Command{
		Use:   "build <kernel>",
		Args:  cobra.ExactArgs(1),
		Short: "Stage a kernel with a generated grub.cfg and author an ISO image",
		RunE: func(cmd *cobra.Command, args []string) error {
			kernelPath := strings.TrimSpace(args[0])
			if kernelPath == "" {
				return fmt.Errorf("kernel path is required")
			}

			cmdLogger := logger.With("command", "build")
			output, err := config.BuildImage(cmd.Context(), kernelPath, config.Options{
				ProfilePath: profilePath,
				Overrides:   overrides,
			}, cmdLogger)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output.Request.OutputPath)
			return nil
		},
	}

	addProfileFlags(cmd, &profilePath, &overrides)
	return cmd
}

func newRunnerCommand(logger *slog.Logger, levelVar *slog.LevelVar) *cobra.Command {
	var (
		profilePath string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "runner <kernel>",
		Args:  cobra.ExactArgs(1),
		Short: "Build an image for a kernel using profile defaults (for use as a cargo/make runner)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdLogger := logger.With("command", "runner")
			if quiet && levelVar != nil {
				levelVar.Set(slog.LevelError)
			}

			output, err := config.BuildImage(cmd.Context(), args[0], config.Options{ProfilePath: profilePath}, cmdLogger)
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Created bootable image at %s\n", output.Request.OutputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "config", config.DefaultProfilePath, "Path to the YAML build profile")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress any output to stdout")
	return cmd
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image>",
		Args:  cobra.ExactArgs(1),
		Short: "List the files inside an ISO image",
		RunE: func(cmd *cobra.Command, args []string) error {
			contents, err := config.Inspect(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range contents.Entries {
				fmt.Fprintf(out, "%s\t%d\n", entry.Path, entry.Size)
			}
			if !contents.Has(image.KernelPath) {
				return fmt.Errorf("image has no %s", image.KernelPath)
			}
			return nil
		},
	}
}

func newCheckCommand(logger *slog.Logger) *cobra.Command {
	var (
		profilePath string
		overrides   profile.Profile
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the ISO tool and the programs it needs are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := config.CheckTools(config.Options{
				ProfilePath: profilePath,
				Overrides:   overrides,
			}, logger.With("command", "check"))

			out := cmd.OutOrStdout()
			for _, status := range statuses {
				state := status.Path
				if status.Err != nil {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", status.Name, state, status.Purpose)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&profilePath, "config", config.DefaultProfilePath, "Path to the YAML build profile")
	cmd.Flags().StringVar(&overrides.Tool, "tool", "", "ISO-authoring program (default "+config.DefaultTool+")")
	return cmd
}

func addProfileFlags(cmd *cobra.Command, profilePath *string, overrides *profile.Profile) {
	cmd.Flags().StringVar(profilePath, "config", config.DefaultProfilePath, "Path to the YAML build profile")
	cmd.Flags().StringVar(&overrides.Label, "label", "", "GRUB menu entry title (default: kernel file name)")
	cmd.Flags().StringVar(&overrides.StageDir, "stage-dir", "", "Staging directory (default: <kernel dir>/"+profile.DefaultStageDirName+")")
	cmd.Flags().StringVarP(&overrides.Output, "output", "o", "", "Output image path (default: <kernel>.iso)")
	cmd.Flags().StringVar(&overrides.Tool, "tool", "", "ISO-authoring program (default "+config.DefaultTool+")")
}
