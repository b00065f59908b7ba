package archive

import (
	"compress/bzip2"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// decompressor wraps a compressed stream.
type decompressor func(io.Reader) (io.ReadCloser, error)

func gunzip(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func unxz(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

func unzstd(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

func bunzip2(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}

func unlz4(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// streamReader presents a single compressed stream as a one-entry archive.
type streamReader struct {
	f      *os.File
	rc     io.ReadCloser
	name   string
	size   int64
	served bool
}

func streamOpener(d decompressor) func(string) (backend, error) {
	return func(path string) (backend, error) {
		return openStream(path, d)
	}
}

func openStream(path string, d decompressor) (*streamReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := d(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &streamReader{f: f, rc: rc, name: trimExt(path), size: -1}, nil
}

// openGzip names the entry after the gzip header when present and takes the
// declared size from the ISIZE trailer (the length modulo 2^32).
func openGzip(path string) (backend, error) {
	s, err := openStream(path, gunzip)
	if err != nil {
		return nil, err
	}
	if zr, ok := s.rc.(*gzip.Reader); ok && zr.Name != "" {
		s.name = filepath.Base(zr.Name)
	}
	s.size = gzipISize(s.f)
	return s, nil
}

func gzipISize(f *os.File) int64 {
	fi, err := f.Stat()
	if err != nil || fi.Size() < 18 {
		return -1
	}
	var trailer [4]byte
	if _, err := f.ReadAt(trailer[:], fi.Size()-4); err != nil {
		return -1
	}
	return int64(binary.LittleEndian.Uint32(trailer[:]))
}

func (s *streamReader) next() (entry, error) {
	if s.served {
		return entry{}, io.EOF
	}
	s.served = true
	return entry{name: s.name, size: s.size}, nil
}

// open hands out the decompressor without its Close; close releases it.
func (s *streamReader) open() (io.Reader, error) {
	return struct{ io.Reader }{s.rc}, nil
}

func (s *streamReader) close() error {
	s.rc.Close()
	return s.f.Close()
}

// trimExt returns the base name of path without its final extension.
func trimExt(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return base[:len(base)-len(ext)]
	}
	return base
}
