package setup

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

var packageLogger *slog.Logger

// SetLogger configures the package logger. A nil logger restores slog.Default.
func SetLogger(logger *slog.Logger) {
	packageLogger = logger
}

func getLogger() *slog.Logger {
	if packageLogger != nil {
		return packageLogger
	}
	return slog.Default()
}

// Requirement is a program the ISO tool depends on.
type Requirement struct {
	Name     string
	Purpose  string
	Optional bool
}

// HelperRequirements lists what grub-mkrescue invokes besides itself.
var HelperRequirements = []Requirement{
	{Name: "xorriso", Purpose: "writes the ISO9660 image"},
	{Name: "mformat", Purpose: "builds the EFI boot partition (mtools)", Optional: true},
}

// LookPathFunc resolves a program name to a path.
type LookPathFunc func(file string) (string, error)

// Status is the outcome of a single requirement check.
type Status struct {
	Requirement
	Path string
	Err  error
}

// Verify resolves tool and its helpers. It returns an error naming every
// missing required program; optional ones are only logged.
func Verify(tool string) ([]Status, error) {
	return verify(tool, exec.LookPath)
}

func verify(tool string, lookPath LookPathFunc) ([]Status, error) {
	requirements := append([]Requirement{{Name: tool, Purpose: "authors the bootable image"}}, HelperRequirements...)

	var (
		statuses []Status
		missing  []string
	)
	for _, req := range requirements {
		path, err := lookPath(req.Name)
		status := Status{Requirement: req, Path: path, Err: err}
		statuses = append(statuses, status)

		switch {
		case err == nil:
			getLogger().Debug("found program", "program", req.Name, "path", path)
		case req.Optional:
			getLogger().Warn("optional program not found", "program", req.Name, "purpose", req.Purpose)
		default:
			getLogger().Error("required program not found", "program", req.Name, "purpose", req.Purpose)
			missing = append(missing, req.Name)
		}
	}

	if len(missing) > 0 {
		return statuses, fmt.Errorf("missing required programs: %s", strings.Join(missing, ", "))
	}
	return statuses, nil
}

// IsNotFound reports whether err came from a failed PATH lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
