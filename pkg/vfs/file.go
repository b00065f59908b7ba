package vfs

import (
	"fmt"
	"io"
	"os"

	"fxvfs/pkg/archive"
)

// File is an archive entry materialized in memory. The cursor always stays
// within [0, Length()]. A File is not safe for concurrent use.
type File struct {
	// session owns data; both are released together by Close.
	session *archive.Session
	data    []byte
	size    int64
	offset  int64

	archivePath string
	name        string
	ordinal     int
}

// ReadElements copies up to size*count bytes from the cursor into p and
// advances by the bytes copied. It returns the number of whole elements;
// bytes of a trailing partial element are copied but not counted.
func (f *File) ReadElements(p []byte, size, count int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	want := int64(len(p))
	if int64(count) <= want/int64(size) {
		want = int64(size) * int64(count)
	}
	n := f.read(p[:want])
	return n / size
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := f.read(p)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (f *File) read(p []byte) int {
	if f.offset >= f.size {
		return 0
	}
	n := copy(p, f.data[f.offset:f.size])
	f.offset += int64(n)
	return n
}

// ReadAt implements io.ReaderAt. It does not move the cursor.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("vfs: negative offset %d", off)
	}
	if off >= f.size {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:f.size])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Seek moves the cursor relative to whence and returns the new position.
// Positions beyond the end clamp to the end and positions before the start
// clamp to zero; neither is an error.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = f.offset
	case io.SeekEnd:
		base = f.size
	default:
		return f.offset, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	pos := base + offset
	switch {
	case offset > 0 && pos < base: // overflow
		pos = f.size
	case offset < 0 && pos > base:
		pos = 0
	}
	f.offset = max(0, min(pos, f.size))
	return f.offset, nil
}

// Tell returns the cursor position.
func (f *File) Tell() int64 { return f.offset }

// Rewind moves the cursor to the start.
func (f *File) Rewind() { f.offset = 0 }

// Length returns the entry size.
func (f *File) Length() int64 { return f.size }

// Name returns the entry path inside the archive.
func (f *File) Name() string { return f.name }

// ArchivePath returns the path of the containing archive.
func (f *File) ArchivePath() string { return f.archivePath }

// Ordinal returns the entry's position in the archive's enumeration order.
func (f *File) Ordinal() int { return f.ordinal }

// Close releases the archive session and the entry data. Further use of the
// File is invalid; a second Close returns os.ErrClosed.
func (f *File) Close() error {
	if f.session == nil {
		return os.ErrClosed
	}
	err := f.session.Close()
	f.session = nil
	f.data = nil
	f.size = 0
	f.offset = 0
	return err
}
