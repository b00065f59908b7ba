package archive

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// IdentifyExtension maps a path to a type by its suffix, case-insensitively.
// The longest matching suffix wins so ".tar.gz" beats ".gz". It never
// touches the filesystem and returns nil for unknown suffixes.
func IdentifyExtension(path string) *Type {
	lower := strings.ToLower(path)

	var best *Type
	bestLen := 0
	for _, t := range registry {
		for _, ext := range t.exts {
			if len(ext) > bestLen && strings.HasSuffix(lower, ext) {
				best, bestLen = t, len(ext)
			}
		}
	}
	return best
}

// IdentifyFile determines the type of the file at path: by extension first,
// then by sniffing its header. Files that are not archives identify as
// FileType. An error means the file could not be read.
func IdentifyFile(path string) (*Type, error) {
	if t := IdentifyExtension(path); t != nil {
		return t, nil
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to identify %s: %w", path, err)
	}
	if t := typeForMIME(mt); t != nil {
		return t, nil
	}
	return FileType, nil
}

// typeForMIME walks from the detected type up to its ancestors, so zip-based
// formats such as jar or epub resolve to zip.
func typeForMIME(mt *mimetype.MIME) *Type {
	for m := mt; m != nil; m = m.Parent() {
		for _, t := range registry {
			for _, name := range t.mimes {
				if m.Is(name) {
					return t
				}
			}
		}
	}
	return nil
}
