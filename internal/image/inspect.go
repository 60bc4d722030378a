package image

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/kdomanski/iso9660"
)

// Entry is a regular file found inside an ISO image.
type Entry struct {
	Path string
	Size int64
}

// Contents lists the regular files of an ISO image, sorted by path.
type Contents struct {
	Entries []Entry
}

// Has reports whether the image contains a file at p. Names are compared
// case-insensitively, without the ";1" version suffix, and also in the
// shortened form used by images lacking Rock Ridge names.
func (c Contents) Has(p string) bool {
	want := normalizeISOPath(p)
	mangled := mangledISOPath(p)
	for _, entry := range c.Entries {
		got := normalizeISOPath(entry.Path)
		if got == want || got == mangled {
			return true
		}
	}
	return false
}

// Inspect reads the ISO9660 directory tree of the image at imagePath.
func Inspect(imagePath string) (Contents, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return Contents{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := iso9660.OpenImage(f)
	if err != nil {
		return Contents{}, fmt.Errorf("read iso9660 image %s: %w", imagePath, err)
	}

	root, err := img.RootDir()
	if err != nil {
		return Contents{}, fmt.Errorf("read iso root: %w", err)
	}

	var entries []Entry
	if err := walkISO(root, "/", &entries); err != nil {
		return Contents{}, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return Contents{Entries: entries}, nil
}

func walkISO(dir *iso9660.File, prefix string, entries *[]Entry) error {
	children, err := dir.GetChildren()
	if err != nil {
		return fmt.Errorf("list %s: %w", prefix, err)
	}

	for _, child := range children {
		childPath := path.Join(prefix, child.Name())
		if child.IsDir() {
			if err := walkISO(child, childPath, entries); err != nil {
				return err
			}
			continue
		}
		*entries = append(*entries, Entry{Path: childPath, Size: child.Size()})
	}
	return nil
}

func normalizeISOPath(p string) string {
	p = strings.ToLower(path.Clean("/" + p))
	return strings.TrimSuffix(p, ";1")
}
