package vfs

import (
	"fmt"

	"fxvfs/pkg/archive"
	"fxvfs/pkg/logger"
)

// Scandir returns one identifier per entry of archivePath, in the archive's
// enumeration order. An empty archive yields an empty slice. Paths that are
// not archives fail with ErrNotAnArchive.
func Scandir(scheme, archivePath string) ([]string, error) {
	typ, err := archive.IdentifyFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAnArchive, err)
	}
	if typ == archive.FileType {
		return nil, fmt.Errorf("%w: %s", ErrNotAnArchive, archivePath)
	}

	s, err := archive.OpenType(archivePath, typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArchiveOpenFailed, archivePath, err)
	}
	defer s.Close()

	ids := []string{}
	for !s.Done() {
		ids = append(ids, FormatIdentifier(scheme, archivePath, s.Name()))
		if err := s.Next(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArchiveOpenFailed, err)
		}
	}

	logger.Debug("Listed archive", "archive", archivePath, "type", typ.Name(), "entries", len(ids))
	return ids, nil
}
