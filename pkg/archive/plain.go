package archive

import (
	"io"
	"os"
	"path/filepath"
)

// plainReader exposes an ordinary file as a container holding only itself.
type plainReader struct {
	f      *os.File
	name   string
	size   int64
	served bool
}

func openPlain(path string) (backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &plainReader{f: f, name: filepath.Base(path), size: fi.Size()}, nil
}

func (p *plainReader) next() (entry, error) {
	if p.served {
		return entry{}, io.EOF
	}
	p.served = true
	return entry{name: p.name, size: p.size}, nil
}

func (p *plainReader) open() (io.Reader, error) {
	return io.NewSectionReader(p.f, 0, p.size), nil
}

func (p *plainReader) close() error {
	return p.f.Close()
}
