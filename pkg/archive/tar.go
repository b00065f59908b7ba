package archive

import (
	"archive/tar"
	"io"
	"os"
)

type tarReader struct {
	f  *os.File
	rc io.ReadCloser
	tr *tar.Reader
}

// tarOpener opens a tarball, optionally wrapped in a compressed stream.
func tarOpener(d decompressor) func(string) (backend, error) {
	return func(path string) (backend, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		t := &tarReader{f: f}
		var src io.Reader = f
		if d != nil {
			rc, err := d(f)
			if err != nil {
				f.Close()
				return nil, err
			}
			t.rc = rc
			src = rc
		}
		t.tr = tar.NewReader(src)
		return t, nil
	}
}

// next skips directories, links and other non-regular members.
func (t *tarReader) next() (entry, error) {
	for {
		hdr, err := t.tr.Next()
		if err != nil {
			return entry{}, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		return entry{name: hdr.Name, size: hdr.Size}, nil
	}
}

func (t *tarReader) open() (io.Reader, error) {
	return t.tr, nil
}

func (t *tarReader) close() error {
	if t.rc != nil {
		t.rc.Close()
	}
	return t.f.Close()
}
