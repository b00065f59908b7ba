package vfs

import "fxvfs/pkg/archive"

// IsContainer reports whether path names a supported archive type. Only the
// name is inspected.
func IsContainer(path string) bool {
	return archive.IdentifyExtension(path) != nil
}
