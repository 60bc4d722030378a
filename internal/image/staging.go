package image

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ensureDir creates path as a single directory. An existing directory is accepted;
// an existing file or any other failure is returned.
func ensureDir(path string) error {
	err := os.Mkdir(path, 0o755)
	if err == nil || !errors.Is(err, fs.ErrExist) {
		return err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory: %w", path, err)
	}
	return nil
}

// writeGrubConfig creates or truncates path and writes the config for label into it.
func writeGrubConfig(path, label string) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &IOError{Op: OpOpenGrubConfig, Err: err}
	}

	if _, err := io.WriteString(out, GrubConfig(label)); err != nil {
		out.Close()
		return &IOError{Op: OpWriteGrubConfig, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: OpWriteGrubConfig, Err: err}
	}
	return nil
}

// copyFile copies src over dst, keeping the permission bits of src.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile leaves the mode of an existing dst alone.
	return os.Chmod(dst, info.Mode().Perm())
}
