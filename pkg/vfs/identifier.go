package vfs

import (
	"fmt"
	"strings"
)

// Identifier names an entry inside an archive: scheme + archive path + ":" + entry path.
//
// The split happens at the first colon after the scheme, so archive paths
// that contain a colon (Windows drive letters, URLs) cannot be addressed.
type Identifier struct {
	Scheme      string
	ArchivePath string
	EntryPath   string
}

// ParseIdentifier splits s into its archive and entry paths. The scheme
// prefix is matched case-insensitively; no unescaping is performed.
func ParseIdentifier(scheme, s string) (Identifier, error) {
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return Identifier{}, ErrNotThisScheme
	}
	rest := s[len(scheme):]

	archivePath, entryPath, ok := strings.Cut(rest, ":")
	if !ok {
		return Identifier{}, fmt.Errorf("%w: no separator in %q", ErrMalformedIdentifier, s)
	}
	if archivePath == "" {
		return Identifier{}, fmt.Errorf("%w: empty archive path in %q", ErrMalformedIdentifier, s)
	}
	if entryPath == "" {
		return Identifier{}, fmt.Errorf("%w: empty entry path in %q", ErrMalformedIdentifier, s)
	}

	return Identifier{Scheme: scheme, ArchivePath: archivePath, EntryPath: entryPath}, nil
}

// FormatIdentifier builds the identifier string for an entry.
func FormatIdentifier(scheme, archivePath, entryPath string) string {
	return scheme + archivePath + ":" + entryPath
}

func (id Identifier) String() string {
	return FormatIdentifier(id.Scheme, id.ArchivePath, id.EntryPath)
}
