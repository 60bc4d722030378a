package image

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// DefaultTool is the ISO-authoring program invoked when Builder.Tool is empty.
const DefaultTool = "grub-mkrescue"

// ToolResult is the observable outcome of an external tool run.
type ToolResult struct {
	ExitCode int
	Stderr   []byte
}

// Success reports whether the tool exited with status zero.
func (r ToolResult) Success() bool {
	return r.ExitCode == 0
}

// ToolRunner launches an external program and waits for it to exit.
// A non-nil error means the program could not be started at all.
type ToolRunner interface {
	Run(ctx context.Context, name string, args []string) (ToolResult, error)
}

// Ensure ExecRunner satisfies the ToolRunner interface.
var _ ToolRunner = ExecRunner{}

// ExecRunner runs tools as child processes. Stdout is discarded and stderr is buffered.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string) (ToolResult, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return ToolResult{Stderr: stderr.Bytes()}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was killed by a signal.
		return ToolResult{ExitCode: exitErr.ExitCode(), Stderr: stderr.Bytes()}, nil
	}
	return ToolResult{}, err
}
