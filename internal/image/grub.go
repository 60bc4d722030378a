package image

import "fmt"

// KernelPath is where the kernel lives inside the image.
const KernelPath = "/boot/kernel.elf"

const grubConfigTemplate = `set timeout=0
set default=0

menuentry "%s" {
    multiboot2 %s
    boot
}
`

// GrubConfig renders a grub.cfg with a single multiboot2 entry titled label.
// The label is embedded verbatim; quotes or braces in it produce a broken config.
func GrubConfig(label string) string {
	return fmt.Sprintf(grubConfigTemplate, label, KernelPath)
}
