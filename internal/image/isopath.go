package image

import (
	"path"
	"strings"
)

const (
	maxDirIdentifierLen  = 31
	maxFileIdentifierLen = 30
	maxExtensionLen      = 8
)

// dCharacters is the set kdomanski/iso9660 keeps when mangling names; anything
// else becomes '_'.
const dCharacters = "abcdefghijklmnopqrstuvwxyz0123456789_!\"%&'()*+,-./:;<=>?"

// mangledISOPath returns p as a plain ISO9660 writer (no Rock Ridge) would
// store it, without the ";1" version suffix. It lets Contents.Has find files
// whose long or multi-dot names were shortened inside the image.
func mangledISOPath(p string) string {
	var segments []string
	for _, segment := range strings.Split(p, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return "/"
	}

	last := len(segments) - 1
	for i := range segments[:last] {
		segments[i] = mangle(segments[i], maxDirIdentifierLen)
	}
	segments[last] = mangleFileName(segments[last])

	return "/" + path.Join(segments...)
}

func mangleFileName(name string) string {
	parts := strings.Split(strings.ToLower(name), ".")
	base := parts[0]
	ext := ""
	if len(parts) > 1 {
		base = strings.Join(parts[:len(parts)-1], "_")
		ext = mangle(parts[len(parts)-1], maxExtensionLen)
	}

	// room for ";1"
	limit := maxFileIdentifierLen - 2
	if ext != "" {
		limit -= 1 + len(ext)
		return mangle(base, limit) + "." + ext
	}
	return mangle(base, limit)
}

func mangle(s string, limit int) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < limit; i++ {
		if strings.IndexByte(dCharacters, s[i]) >= 0 {
			b.WriteByte(s[i])
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
