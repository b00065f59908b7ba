package archive

import (
	"io"

	"github.com/javi11/rardecode/v2"
)

// rarReader walks a RAR archive sequentially. Multi-volume sets are followed
// through the volume naming convention of the first volume's path.
type rarReader struct {
	rc *rardecode.ReadCloser
}

func openRar(path string) (backend, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &rarReader{rc: rc}, nil
}

func (r *rarReader) next() (entry, error) {
	for {
		h, err := r.rc.Next()
		if err != nil {
			return entry{}, err
		}
		if h.IsDir {
			continue
		}
		size := h.UnPackedSize
		if h.UnKnownSize {
			size = -1
		}
		return entry{name: h.Name, size: size}, nil
	}
}

// open hides Close so materialization does not close the whole archive.
func (r *rarReader) open() (io.Reader, error) {
	return struct{ io.Reader }{r.rc}, nil
}

func (r *rarReader) close() error {
	return r.rc.Close()
}
