package image

import "fmt"

// Operation labels carried by IOError.
const (
	OpCreateStageDir  = "failed to create isodir"
	OpCreateGrubDir   = "failed to create boot/grub"
	OpOpenGrubConfig  = "failed to open grub.cfg"
	OpWriteGrubConfig = "failed to write grub.cfg"
	OpCopyKernel      = "failed to create kernel.elf"
	OpExecTool        = "failed to execute grub-mkrescue command"
)

// An IOError reports a failed filesystem operation, or a tool that could not be launched.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// A ToolFailedError reports an ISO-authoring tool that ran but exited unsuccessfully.
// Stderr holds the tool's standard error exactly as captured.
type ToolFailedError struct {
	Tool     string
	ExitCode int
	Stderr   []byte
}

func (e *ToolFailedError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}
