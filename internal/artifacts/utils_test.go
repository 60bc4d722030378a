package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestPathFromURI(t *testing.T) {
	t.Parallel()

	path, err := PathFromURI("file:///var/tmp/image.iso")
	if err != nil {
		t.Fatalf("PathFromURI() error = %v", err)
	}
	if path != "/var/tmp/image.iso" {
		t.Fatalf("PathFromURI() = %q", path)
	}

	if _, err := PathFromURI("https://example.test/image.iso"); err == nil {
		t.Fatal("PathFromURI() error = nil, want error")
	}
}

func TestFileURIRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "image.iso")

	got, err := PathFromURI(FileURI(path))
	if err != nil {
		t.Fatalf("PathFromURI() error = %v", err)
	}
	if filepath.FromSlash(got) != path {
		t.Fatalf("round trip = %q, want %q", got, path)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "image.iso")
	content := []byte("iso bytes")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	artifact, err := Describe(path, ImageArtifact, ISOContentType)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if _, err := uuid.Parse(artifact.ID); err != nil {
		t.Fatalf("artifact ID %q is not a uuid: %v", artifact.ID, err)
	}
	if artifact.Size != int64(len(content)) {
		t.Fatalf("Size = %d, want %d", artifact.Size, len(content))
	}
	sum := sha256.Sum256(content)
	want := "sha256:" + hex.EncodeToString(sum[:])
	if artifact.Checksum == nil || *artifact.Checksum != want {
		t.Fatalf("Checksum = %v, want %s", artifact.Checksum, want)
	}
	if artifact.Kind != ImageArtifact || artifact.ContentType != ISOContentType {
		t.Fatalf("unexpected artifact: %+v", artifact)
	}
}

func TestDescribeRejectsDirectory(t *testing.T) {
	t.Parallel()

	if _, err := Describe(t.TempDir(), ImageArtifact, ISOContentType); err == nil {
		t.Fatal("Describe() error = nil, want error")
	}
}
