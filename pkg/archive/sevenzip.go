package archive

import (
	"io"

	"github.com/javi11/sevenzip"
)

type sevenZipReader struct {
	rc  *sevenzip.ReadCloser
	i   int
	cur *sevenzip.File
}

func openSevenZip(path string) (backend, error) {
	rc, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &sevenZipReader{rc: rc}, nil
}

func (z *sevenZipReader) next() (entry, error) {
	for z.i < len(z.rc.File) {
		f := z.rc.File[z.i]
		z.i++
		if f.FileInfo().IsDir() {
			continue
		}
		z.cur = f
		return entry{name: f.Name, size: int64(f.UncompressedSize)}, nil
	}
	z.cur = nil
	return entry{}, io.EOF
}

// open decompresses the folder containing the entry. Solid archives pay for
// every preceding entry in the same folder.
func (z *sevenZipReader) open() (io.Reader, error) {
	return z.cur.Open()
}

func (z *sevenZipReader) close() error {
	return z.rc.Close()
}
