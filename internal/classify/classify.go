// Package classify provides pure filename predicates: raw photo detection,
// JPEG detection, sidecar format tags, and representative-file selection.
package classify

import (
	"path/filepath"
	"sort"
	"strings"
)

// Raw photo extensions (lowercase, without leading dot).
var rawExtensions = map[string]bool{
	"cr2": true,
	"nef": true,
	"arw": true,
	"dng": true,
	"raw": true,
	"orf": true,
}

// JPEG extensions (lowercase, without leading dot).
var jpegExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
}

// IsRaw reports whether name has a raw photo extension (case-insensitive).
func IsRaw(name string) bool {
	return rawExtensions[lowerExt(name)]
}

// IsJPEG reports whether name has a JPEG extension (case-insensitive).
func IsJPEG(name string) bool {
	return jpegExtensions[lowerExt(name)]
}

// IsPhoto reports whether name is a raw or JPEG photo file.
func IsPhoto(name string) bool {
	return IsRaw(name) || IsJPEG(name)
}

// SidecarFormat extracts the embedded format tag from a sidecar filename of
// the shape <base>.<FORMAT>.<ext> (at least three dot-separated components).
// The second-to-last component is returned uppercased. The second return is
// false when the name does not have the sidecar shape.
func SidecarFormat(name string) (string, bool) {
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return "", false
	}
	return strings.ToUpper(parts[len(parts)-2]), true
}

// IsRawFormat reports whether an uppercase format tag (from SidecarFormat)
// names a raw photo format.
func IsRawFormat(tag string) bool {
	return rawExtensions[strings.ToLower(tag)]
}

// IsJPEGFormat reports whether an uppercase format tag names a JPEG format.
func IsJPEGFormat(tag string) bool {
	return jpegExtensions[strings.ToLower(tag)]
}

// UnitKey returns the grouping key for a filename: everything before the
// first dot. Names without a dot key on the whole name.
func UnitKey(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Representative selects the metadata source file for a unit: the first
// JPEG in lexical basename order, else the first photo file in lexical
// order. Returns false when the unit holds no photo file. Lexical order
// makes the choice independent of directory enumeration order.
func Representative(paths []string) (string, bool) {
	photos := make([]string, 0, len(paths))
	for _, p := range paths {
		if IsPhoto(filepath.Base(p)) {
			photos = append(photos, p)
		}
	}
	if len(photos) == 0 {
		return "", false
	}
	sort.Slice(photos, func(i, j int) bool {
		return filepath.Base(photos[i]) < filepath.Base(photos[j])
	})
	for _, p := range photos {
		if IsJPEG(filepath.Base(p)) {
			return p, true
		}
	}
	return photos[0], true
}

// lowerExt returns the filename extension lowercased without the dot.
func lowerExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}
