// Package archive enumerates and materializes entries of archive containers.
//
// A Session is positioned at one entry at a time, in the container's native
// order. The current entry can be materialized into memory owned by the
// session; that memory stays valid until the session advances, rewinds or
// closes.
package archive

import (
	"errors"
	"io"
)

var (
	// ErrNotArchive is returned by Open when the path is not a supported archive.
	ErrNotArchive = errors.New("archive: not a supported archive")

	// ErrEntryTooLarge is returned by Data when an entry exceeds the configured limit.
	ErrEntryTooLarge = errors.New("archive: entry exceeds maximum size")

	// ErrNoEntry is returned by Data when the session is exhausted.
	ErrNoEntry = errors.New("archive: no current entry")

	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("archive: session closed")
)

// Type is a supported container format.
type Type struct {
	name  string
	exts  []string // lowercase, with leading dot
	mimes []string // content types used when sniffing
	open  func(path string) (backend, error)
}

// Name is the short format name ("zip", "rar", "file", ...).
func (t *Type) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Extensions lists the filename suffixes mapped to this type.
func (t *Type) Extensions() []string {
	return append([]string(nil), t.exts...)
}

func (t *Type) String() string { return t.Name() }

// entry is the member a backend is positioned at. size is -1 when the
// container does not declare it.
type entry struct {
	name string
	size int64
}

// backend is one open container. next advances to the following regular
// file and returns io.EOF when exhausted; open returns the content of the
// member last returned by next. Readers that also implement io.Closer are
// closed after materialization.
type backend interface {
	next() (entry, error)
	open() (io.Reader, error)
	close() error
}

var (
	ZipType      = &Type{name: "zip", exts: []string{".zip"}, mimes: []string{"application/zip"}, open: openZip}
	RarType      = &Type{name: "rar", exts: []string{".rar"}, mimes: []string{"application/x-rar-compressed"}, open: openRar}
	SevenZipType = &Type{name: "7z", exts: []string{".7z"}, mimes: []string{"application/x-7z-compressed"}, open: openSevenZip}
	TarType      = &Type{name: "tar", exts: []string{".tar"}, mimes: []string{"application/x-tar"}, open: tarOpener(nil)}

	TarGzipType  = &Type{name: "tgz", exts: []string{".tar.gz", ".tgz"}, open: tarOpener(gunzip)}
	TarXzType    = &Type{name: "txz", exts: []string{".tar.xz", ".txz"}, open: tarOpener(unxz)}
	TarZstdType  = &Type{name: "tzst", exts: []string{".tar.zst", ".tzst"}, open: tarOpener(unzstd)}
	TarBzip2Type = &Type{name: "tbz2", exts: []string{".tar.bz2", ".tbz2"}, open: tarOpener(bunzip2)}
	TarLz4Type   = &Type{name: "tlz4", exts: []string{".tar.lz4"}, open: tarOpener(unlz4)}

	GzipType  = &Type{name: "gz", exts: []string{".gz"}, mimes: []string{"application/gzip"}, open: openGzip}
	XzType    = &Type{name: "xz", exts: []string{".xz"}, mimes: []string{"application/x-xz"}, open: streamOpener(unxz)}
	ZstdType  = &Type{name: "zst", exts: []string{".zst"}, mimes: []string{"application/zstd"}, open: streamOpener(unzstd)}
	Bzip2Type = &Type{name: "bz2", exts: []string{".bz2"}, mimes: []string{"application/x-bzip2"}, open: streamOpener(bunzip2)}
	Lz4Type   = &Type{name: "lz4", exts: []string{".lz4"}, mimes: []string{"application/x-lz4"}, open: streamOpener(unlz4)}

	// FileType is the pass-through type for anything that is not an archive.
	// Opened explicitly with OpenType it behaves as a one-entry container.
	FileType = &Type{name: "file", open: openPlain}
)

var registry = []*Type{
	ZipType, RarType, SevenZipType, TarType,
	TarGzipType, TarXzType, TarZstdType, TarBzip2Type, TarLz4Type,
	GzipType, XzType, ZstdType, Bzip2Type, Lz4Type,
}

// Types returns the supported archive types, excluding FileType.
func Types() []*Type {
	return append([]*Type(nil), registry...)
}
