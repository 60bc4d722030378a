package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fileScheme = "file://"

func PathFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, fileScheme) {
		return "", errors.New("not a file:// URI")
	}
	return strings.TrimPrefix(uri, fileScheme), nil
}

func FileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return fileScheme + filepath.ToSlash(path)
}

// Describe records the file at path as an artifact of the given kind, with a
// fresh ID and a sha256 checksum of its contents.
func Describe(path string, kind ArtifactKind, contentType string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Artifact{}, err
	}
	if !info.Mode().IsRegular() {
		return Artifact{}, fmt.Errorf("%s is not a regular file", path)
	}

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return Artifact{}, fmt.Errorf("checksum %s: %w", path, err)
	}
	checksum := "sha256:" + hex.EncodeToString(hash.Sum(nil))

	return Artifact{
		ID:          uuid.NewString(),
		Kind:        kind,
		URI:         FileURI(path),
		Size:        info.Size(),
		Checksum:    &checksum,
		ContentType: contentType,
		Metadata:    map[string]any{},
	}, nil
}
