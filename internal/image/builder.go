// Package image assembles a GRUB2 staging tree around a multiboot2 kernel and
// hands it to grub-mkrescue to produce a bootable ISO.
//
// Layout of the staging tree:
//
//	<stage>/boot/grub/grub.cfg
//	<stage>/boot/kernel.elf
//
// The tree is left on disk after Build returns, whether it succeeded or not.
package image

import (
	"context"
	"os"
	"path/filepath"
)

// Request describes a single image build.
type Request struct {
	// OutputPath is where the tool writes the ISO.
	OutputPath string
	// StageDir is the staging root. Its parent must already exist.
	StageDir string
	// KernelPath points at the kernel executable to embed.
	KernelPath string
	// Label is the GRUB menu entry title.
	Label string
}

// Builder runs the staging pipeline. The zero value invokes grub-mkrescue via os/exec.
//
// A Builder holds no state between calls, but concurrent builds sharing a
// StageDir race on the same files; callers must serialize them.
type Builder struct {
	// Tool is the ISO-authoring program. Defaults to DefaultTool.
	Tool string
	// Runner launches Tool. Defaults to ExecRunner.
	Runner ToolRunner
}

// Build runs the pipeline with a zero Builder.
func Build(ctx context.Context, req Request) error {
	return (&Builder{}).Build(ctx, req)
}

// Build stages req.KernelPath under req.StageDir with a generated grub.cfg and
// invokes the ISO tool. Steps run in order and the first failure is returned
// as an *IOError or *ToolFailedError; later steps are not attempted.
func (b *Builder) Build(ctx context.Context, req Request) error {
	if err := ensureDir(req.StageDir); err != nil {
		return &IOError{Op: OpCreateStageDir, Err: err}
	}

	grubDir := filepath.Join(req.StageDir, "boot", "grub")
	if err := os.MkdirAll(grubDir, 0o755); err != nil {
		return &IOError{Op: OpCreateGrubDir, Err: err}
	}

	if err := writeGrubConfig(filepath.Join(grubDir, "grub.cfg"), req.Label); err != nil {
		return err
	}

	if err := copyFile(req.KernelPath, filepath.Join(req.StageDir, "boot", "kernel.elf")); err != nil {
		return &IOError{Op: OpCopyKernel, Err: err}
	}

	tool := b.tool()
	result, err := b.runner().Run(ctx, tool, ToolArgs(req.OutputPath, req.StageDir))
	if err != nil {
		return &IOError{Op: OpExecTool, Err: err}
	}
	if !result.Success() {
		return &ToolFailedError{Tool: tool, ExitCode: result.ExitCode, Stderr: result.Stderr}
	}

	return nil
}

// ToolArgs returns the arguments passed to the ISO tool.
func ToolArgs(outputPath, stageDir string) []string {
	return []string{"-o", outputPath, stageDir}
}

func (b *Builder) tool() string {
	if b != nil && b.Tool != "" {
		return b.Tool
	}
	return DefaultTool
}

func (b *Builder) runner() ToolRunner {
	if b != nil && b.Runner != nil {
		return b.Runner
	}
	return ExecRunner{}
}
