// Package profile loads the optional grubimage.yaml build profile and resolves
// it, together with a kernel path, into an image.Request.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cochaviz/grubimage/internal/image"
)

// DefaultPath is the profile looked up in the working directory.
const DefaultPath = "grubimage.yaml"

// DefaultStageDirName is the staging directory created next to the kernel.
const DefaultStageDirName = "isodir"

// Profile holds build settings. Empty fields are derived from the kernel path.
type Profile struct {
	Label    string `yaml:"label,omitempty"`
	StageDir string `yaml:"stage_dir,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Tool     string `yaml:"tool,omitempty"`
}

// Load reads the profile at path. A missing file yields an empty profile.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}

	var p Profile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects labels that cannot appear inside a quoted grub menuentry title.
func (p Profile) Validate() error {
	return ValidateLabel(p.Label)
}

// ValidateLabel rejects labels that would break the generated grub.cfg.
// An empty label is accepted and later replaced by the kernel file name.
func ValidateLabel(label string) error {
	if strings.ContainsAny(label, "\"\n\r") {
		return fmt.Errorf("label %q must not contain double quotes or line breaks", label)
	}
	return nil
}

// Merge returns p with every non-empty field of override applied on top.
func (p Profile) Merge(override Profile) Profile {
	if override.Label != "" {
		p.Label = override.Label
	}
	if override.StageDir != "" {
		p.StageDir = override.StageDir
	}
	if override.Output != "" {
		p.Output = override.Output
	}
	if override.Tool != "" {
		p.Tool = override.Tool
	}
	return p
}

// Request resolves the profile against kernelPath:
//
//	label     -> kernel file name
//	stage_dir -> <kernel dir>/isodir
//	output    -> <kernel path>.iso
func (p Profile) Request(kernelPath string) (image.Request, error) {
	kernelPath = strings.TrimSpace(kernelPath)
	if kernelPath == "" {
		return image.Request{}, errors.New("expected path to kernel executable")
	}

	label := p.Label
	if label == "" {
		label = filepath.Base(kernelPath)
	}
	if err := ValidateLabel(label); err != nil {
		return image.Request{}, err
	}

	stageDir := p.StageDir
	if stageDir == "" {
		stageDir = filepath.Join(filepath.Dir(kernelPath), DefaultStageDirName)
	}

	output := p.Output
	if output == "" {
		output = kernelPath + ".iso"
	}

	return image.Request{
		OutputPath: output,
		StageDir:   stageDir,
		KernelPath: kernelPath,
		Label:      label,
	}, nil
}
