package image

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kdomanski/iso9660"
)

func writeTestISO(t *testing.T, sourceDir, imagePath string) {
	t.Helper()

	writer, err := iso9660.NewWriter()
	if err != nil {
		t.Fatalf("create iso writer: %v", err)
	}
	defer writer.Cleanup()

	if err := writer.AddLocalDirectory(sourceDir, "/"); err != nil {
		t.Fatalf("stage directory: %v", err)
	}

	out, err := os.OpenFile(imagePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer out.Close()

	if err := writer.WriteTo(out, "MYOS"); err != nil {
		t.Fatalf("write iso: %v", err)
	}
}

func TestInspectListsStagedFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	stageDir := filepath.Join(tmpDir, "isodir")
	if err := os.MkdirAll(filepath.Join(stageDir, "boot", "grub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	kernel := []byte("not really an elf but close enough")
	if err := os.WriteFile(filepath.Join(stageDir, "boot", "kernel.elf"), kernel, 0o644); err != nil {
		t.Fatalf("write kernel: %v", err)
	}
	if err := os.WriteFile(filepath.Join(stageDir, "boot", "grub", "grub.cfg"), []byte(GrubConfig("MyOS")), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	imagePath := filepath.Join(tmpDir, "image.iso")
	writeTestISO(t, stageDir, imagePath)

	contents, err := Inspect(imagePath)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	for _, want := range []string{KernelPath, "boot/grub/grub.cfg"} {
		if !contents.Has(want) {
			t.Fatalf("image missing %s; entries: %+v", want, contents.Entries)
		}
	}

	for _, entry := range contents.Entries {
		if normalizeISOPath(entry.Path) == KernelPath && entry.Size != int64(len(kernel)) {
			t.Fatalf("kernel size = %d, want %d", entry.Size, len(kernel))
		}
	}
}

func TestInspectRejectsNonISO(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "image.iso")
	if err := os.WriteFile(path, []byte("definitely not iso9660"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Inspect(path); err == nil {
		t.Fatal("Inspect() error = nil, want error")
	}
}

func TestInspectMissingImage(t *testing.T) {
	t.Parallel()

	if _, err := Inspect(filepath.Join(t.TempDir(), "missing.iso")); err == nil {
		t.Fatal("Inspect() error = nil, want error")
	}
}

func TestNormalizeISOPath(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"/BOOT/KERNEL.ELF;1": "/boot/kernel.elf",
		"boot/grub/grub.cfg": "/boot/grub/grub.cfg",
		"/boot//kernel.elf":  "/boot/kernel.elf",
	}
	for input, want := range testCases {
		if got := normalizeISOPath(input); got != want {
			t.Fatalf("normalizeISOPath(%q) = %q, want %q", input, got, want)
		}
	}
}
