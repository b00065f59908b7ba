package vfs

import "errors"

var (
	// ErrNotThisScheme means the identifier belongs to another VFS; callers
	// should try the next adapter.
	ErrNotThisScheme = errors.New("vfs: identifier does not use this scheme")

	// ErrMalformedIdentifier is returned when an identifier lacks the
	// separating colon or one of its two paths.
	ErrMalformedIdentifier = errors.New("vfs: malformed identifier")

	// ErrArchiveOpenFailed is returned when the archive cannot be opened,
	// read or materialized.
	ErrArchiveOpenFailed = errors.New("vfs: failed to open archive")

	// ErrEntryNotFound is returned when no entry matches the requested path.
	ErrEntryNotFound = errors.New("vfs: entry not found")

	// ErrNotAnArchive is returned by Scandir for paths that are not archives.
	ErrNotAnArchive = errors.New("vfs: not an archive")

	// ErrInvalidWhence is returned by Seek for an unknown origin.
	ErrInvalidWhence = errors.New("vfs: invalid whence")
)
