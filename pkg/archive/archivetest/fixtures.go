// Package archivetest builds small archives on disk for tests.
package archivetest

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// Entry is one member of a fixture archive. A Name ending in "/" is written
// as a directory.
type Entry struct {
	Name string
	Data []byte
}

// Pattern returns n deterministic bytes seeded by seed.
func Pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

// Music returns the two-track layout used throughout the tests.
func Music() []Entry {
	return []Entry{
		{Name: "track1.mp3", Data: Pattern(1000, 1)},
		{Name: "track2.mp3", Data: Pattern(2000, 2)},
	}
}

// WriteZip writes entries in order to dir/name and returns its path.
func WriteZip(t testing.TB, dir, name string, entries []Entry) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write(e.Data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return write(t, dir, name, buf.Bytes())
}

// WriteTar writes an uncompressed tarball.
func WriteTar(t testing.TB, dir, name string, entries []Entry) string {
	t.Helper()
	return write(t, dir, name, tarBytes(t, entries))
}

// WriteTarGzip writes a gzip-compressed tarball.
func WriteTarGzip(t testing.TB, dir, name string, entries []Entry) string {
	t.Helper()
	return write(t, dir, name, GzipBytes(t, "", tarBytes(t, entries)))
}

// WriteGzip writes data as a gzip stream whose header records headerName.
func WriteGzip(t testing.TB, dir, name, headerName string, data []byte) string {
	t.Helper()
	return write(t, dir, name, GzipBytes(t, headerName, data))
}

// WriteXz writes data as an xz stream.
func WriteXz(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return write(t, dir, name, buf.Bytes())
}

// WriteZstd writes data as a zstd stream.
func WriteZstd(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return write(t, dir, name, buf.Bytes())
}

// WriteLz4 writes data as an lz4 frame.
func WriteLz4(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := io.Copy(w, bytes.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return write(t, dir, name, buf.Bytes())
}

// WriteFile writes raw bytes.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	return write(t, dir, name, data)
}

// GzipBytes compresses data in memory.
func GzipBytes(t testing.TB, headerName string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Name = headerName
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func tarBytes(t testing.TB, entries []Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: 0o644, Size: int64(len(e.Data)), Typeflag: tar.TypeReg}
		if len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/' {
			hdr = &tar.Header{Name: e.Name, Mode: 0o755, Typeflag: tar.TypeDir}
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := tw.Write(e.Data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func write(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
