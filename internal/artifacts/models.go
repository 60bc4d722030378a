package artifacts

type ArtifactKind string

const (
	ImageArtifact  ArtifactKind = "image"  // Bootable ISO produced by the build
	KernelArtifact ArtifactKind = "kernel" // Kernel executable staged into the image
	ConfigArtifact ArtifactKind = "config" // Generated grub.cfg
)

// ISOContentType is the media type recorded for ISO images.
const ISOContentType = "application/x-iso9660-image"

type Artifact struct {
	ID   string
	Kind ArtifactKind
	URI  string

	Size        int64
	Checksum    *string
	ContentType string
	Metadata    map[string]any
}
