package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cochaviz/grubimage/internal/image"
	"github.com/cochaviz/grubimage/internal/logging"
)

func TestReportErrorForwardsToolStderr(t *testing.T) {
	var stderr bytes.Buffer
	toolErr := &image.ToolFailedError{Tool: image.DefaultTool, ExitCode: 1, Stderr: []byte("xorriso : FAILURE : boom\n")}

	code := reportError(&stderr, logging.Discard(), fmt.Errorf("wrapped: %w", toolErr))
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stderr.String() != "xorriso : FAILURE : boom\n" {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestReportErrorInterrupted(t *testing.T) {
	var stderr bytes.Buffer
	if code := reportError(&stderr, logging.Discard(), context.Canceled); code != 130 {
		t.Fatalf("exit code = %d, want 130", code)
	}
}

func TestVersionFlag(t *testing.T) {
	var levelVar slog.LevelVar
	root := newRootCommand(logging.Discard(), &levelVar)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.String() != "grubimage "+version+"\n" {
		t.Fatalf("version output = %q", out.String())
	}
}

func TestBuildCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell tool stubs require a POSIX shell")
	}

	dir := t.TempDir()
	tool := filepath.Join(dir, "grub-mkrescue")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\nprintf 'ISO' > \"$2\"\n"), 0o755); err != nil {
		t.Fatalf("write tool: %v", err)
	}
	kernel := filepath.Join(dir, "kernel.bin")
	if err := os.WriteFile(kernel, []byte("kernel"), 0o644); err != nil {
		t.Fatalf("write kernel: %v", err)
	}
	output := filepath.Join(dir, "image.iso")

	var levelVar slog.LevelVar
	root := newRootCommand(logging.Discard(), &levelVar)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"build", kernel,
		"--config", filepath.Join(dir, "absent.yaml"),
		"--label", "MyOS",
		"--stage-dir", filepath.Join(dir, "iso"),
		"--output", output,
		"--tool", tool,
		"--log-level", "error",
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if strings.TrimSpace(out.String()) != output {
		t.Fatalf("stdout = %q, want %q", out.String(), output)
	}
	cfg, err := os.ReadFile(filepath.Join(dir, "iso", "boot", "grub", "grub.cfg"))
	if err != nil {
		t.Fatalf("read grub.cfg: %v", err)
	}
	if string(cfg) != image.GrubConfig("MyOS") {
		t.Fatalf("grub.cfg = %q", cfg)
	}
	if levelVar.Level() != slog.LevelError {
		t.Fatalf("log level = %v, want error", levelVar.Level())
	}
}

func TestRunnerQuietPrintsNothing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell tool stubs require a POSIX shell")
	}

	dir := t.TempDir()
	tool := filepath.Join(dir, "grub-mkrescue")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\nprintf 'ISO' > \"$2\"\n"), 0o755); err != nil {
		t.Fatalf("write tool: %v", err)
	}
	kernel := filepath.Join(dir, "kernel.bin")
	if err := os.WriteFile(kernel, []byte("kernel"), 0o644); err != nil {
		t.Fatalf("write kernel: %v", err)
	}
	profilePath := filepath.Join(dir, "grubimage.yaml")
	if err := os.WriteFile(profilePath, []byte("tool: "+tool+"\n"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	var levelVar slog.LevelVar
	root := newRootCommand(logging.Discard(), &levelVar)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"runner", "--quiet", "--config", profilePath, kernel})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out.Len() != 0 {
		t.Fatalf("stdout = %q, want nothing", out.String())
	}
	if _, err := os.Stat(kernel + ".iso"); err != nil {
		t.Fatalf("image not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "isodir", "boot", "kernel.elf")); err != nil {
		t.Fatalf("kernel not staged: %v", err)
	}
}
