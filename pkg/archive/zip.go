package archive

import (
	"io"

	"github.com/klauspost/compress/zip"
)

type zipReader struct {
	zr  *zip.ReadCloser
	i   int
	cur *zip.File
}

func openZip(path string) (backend, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &zipReader{zr: zr}, nil
}

func (z *zipReader) next() (entry, error) {
	for z.i < len(z.zr.File) {
		f := z.zr.File[z.i]
		z.i++
		if f.FileInfo().IsDir() {
			continue
		}
		z.cur = f
		return entry{name: f.Name, size: int64(f.UncompressedSize64)}, nil
	}
	z.cur = nil
	return entry{}, io.EOF
}

func (z *zipReader) open() (io.Reader, error) {
	return z.cur.Open()
}

func (z *zipReader) close() error {
	return z.zr.Close()
}
