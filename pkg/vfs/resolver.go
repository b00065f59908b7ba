package vfs

import (
	"fmt"

	"fxvfs/pkg/archive"
	"fxvfs/pkg/logger"
)

// Resolver opens archive entries as Files. Every call opens the archive
// afresh; nothing is shared between the Files it returns.
type Resolver struct {
	opts []archive.Option
}

// NewResolver returns a Resolver. maxEntrySize bounds materialization in
// bytes; zero means unlimited.
func NewResolver(maxEntrySize int64) *Resolver {
	r := &Resolver{}
	if maxEntrySize > 0 {
		r.opts = append(r.opts, archive.WithMaxEntrySize(maxEntrySize))
	}
	return r
}

// Open parses identifier with scheme and resolves it.
func (r *Resolver) Open(scheme, identifier string) (*File, error) {
	id, err := ParseIdentifier(scheme, identifier)
	if err != nil {
		return nil, err
	}
	return r.Resolve(id.ArchivePath, id.EntryPath)
}

// Resolve scans archivePath in its native order for an entry named exactly
// entryPath and materializes it. On any failure the archive is closed
// before returning.
func (r *Resolver) Resolve(archivePath, entryPath string) (*File, error) {
	s, err := archive.Open(archivePath, r.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArchiveOpenFailed, archivePath, err)
	}

	for !s.Done() && s.Name() != entryPath {
		if err := s.Next(); err != nil {
			s.Close()
			return nil, fmt.Errorf("%w: %w", ErrArchiveOpenFailed, err)
		}
	}
	if s.Done() {
		s.Close()
		logger.Debug("Entry not found", "archive", archivePath, "entry", entryPath)
		return nil, fmt.Errorf("%w: %s in %s", ErrEntryNotFound, entryPath, archivePath)
	}

	ordinal := s.Ordinal()
	data, err := s.Data()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %w", ErrArchiveOpenFailed, err)
	}

	size := s.Size()
	if size != int64(len(data)) {
		logger.Warn("Entry size differs from extracted length", "archive", archivePath, "entry", entryPath, "declared", size, "extracted", len(data))
		size = int64(len(data))
	}

	logger.Debug("Resolved entry", "archive", archivePath, "entry", entryPath, "ordinal", ordinal, "size", size)
	return &File{
		session:     s,
		data:        data,
		size:        size,
		archivePath: archivePath,
		name:        entryPath,
		ordinal:     ordinal,
	}, nil
}
