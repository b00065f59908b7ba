package vfs

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxvfs/pkg/archive"
	"fxvfs/pkg/archive/archivetest"
)

func TestResolve_contentAndLength(t *testing.T) {
	dir := t.TempDir()
	entries := []archivetest.Entry{
		{Name: "a.mp3", Data: archivetest.Pattern(10, 1)},
		{Name: "sub/b.ogg", Data: archivetest.Pattern(4096, 2)},
		{Name: "empty.wav", Data: nil},
	}

	archives := []string{
		archivetest.WriteZip(t, dir, "set.zip", entries),
		archivetest.WriteTar(t, dir, "set.tar", entries),
		archivetest.WriteTarGzip(t, dir, "set.tgz", entries),
	}

	r := NewResolver(0)
	for _, path := range archives {
		for _, e := range entries {
			t.Run(filepath.Base(path)+"/"+e.Name, func(t *testing.T) {
				f, err := r.Resolve(path, e.Name)
				require.NoError(t, err)
				defer f.Close()

				assert.Equal(t, int64(len(e.Data)), f.Length())
				assert.Zero(t, f.Tell())

				got := make([]byte, f.Length())
				assert.Equal(t, len(e.Data), f.ReadElements(got, 1, len(got)))
				assert.Equal(t, len(e.Data), len(got))
				if len(e.Data) > 0 {
					assert.Equal(t, e.Data, got)
				}
			})
		}
	}
}

func TestResolve_caseSensitive(t *testing.T) {
	path := archivetest.WriteZip(t, t.TempDir(), "music.zip", archivetest.Music())

	_, err := NewResolver(0).Resolve(path, "TRACK1.MP3")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestResolve_singleStream(t *testing.T) {
	data := archivetest.Pattern(2500, 8)
	path := archivetest.WriteGzip(t, t.TempDir(), "song.gz", "song.mp3", data)

	f, err := NewResolver(0).Resolve(path, "song.mp3")
	require.NoError(t, err)
	defer f.Close()

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestResolve_unknownSizeUsesExtractedLength(t *testing.T) {
	data := archivetest.Pattern(777, 8)
	path := archivetest.WriteXz(t, t.TempDir(), "song.mp3.xz", data)

	f, err := NewResolver(0).Resolve(path, "song.mp3")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, int64(777), f.Length())
}

func TestResolve_independentHandles(t *testing.T) {
	path := archivetest.WriteZip(t, t.TempDir(), "music.zip", archivetest.Music())
	r := NewResolver(0)

	a, err := r.Resolve(path, "track1.mp3")
	require.NoError(t, err)
	b, err := r.Resolve(path, "track1.mp3")
	require.NoError(t, err)

	_, err = a.Seek(500, io.SeekStart)
	require.NoError(t, err)
	assert.Zero(t, b.Tell())

	require.NoError(t, a.Close())
	got, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Len(t, got, 1000, "closing one handle leaves the other intact")
	require.NoError(t, b.Close())
}

func TestResolve_tooLarge(t *testing.T) {
	path := archivetest.WriteZip(t, t.TempDir(), "music.zip", archivetest.Music())

	_, err := NewResolver(1500).Resolve(path, "track2.mp3")
	assert.ErrorIs(t, err, ErrArchiveOpenFailed)
	assert.ErrorIs(t, err, archive.ErrEntryTooLarge)
}

func TestResolve_plainFileIsNotAnArchive(t *testing.T) {
	path := archivetest.WriteFile(t, t.TempDir(), "plain.txt", []byte("hello"))

	_, err := NewResolver(0).Resolve(path, "plain.txt")
	assert.ErrorIs(t, err, ErrArchiveOpenFailed)
	assert.ErrorIs(t, err, archive.ErrNotArchive)
}

func TestResolverOpen_parseErrors(t *testing.T) {
	r := NewResolver(0)

	_, err := r.Open("fx://", "http://example.com/a.mp3")
	assert.ErrorIs(t, err, ErrNotThisScheme)

	_, err = r.Open("fx://", "fx://music.zip")
	assert.ErrorIs(t, err, ErrMalformedIdentifier)
}

func TestResolve_storedRarAndSevenZip(t *testing.T) {
	want := map[string][]byte{
		"docs/notes.txt": []byte("liner notes\n"),
		"track01.mp3":    []byte("not really an mp3\n"),
	}
	r := NewResolver(0)

	for _, name := range []string{"album.7z", "album.rar"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("..", "archive", "testdata", name)

			ids, err := Scandir("fx://", path)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(ids), 2)
			assert.Equal(t, FormatIdentifier("fx://", path, "docs/notes.txt"), ids[0], "directories are not listed")

			for entry, data := range want {
				f, err := r.Open("fx://", FormatIdentifier("fx://", path, entry))
				require.NoError(t, err)
				assert.Equal(t, int64(len(data)), f.Length())
				got, err := io.ReadAll(f)
				require.NoError(t, err)
				assert.Equal(t, data, got)
				require.NoError(t, f.Close())
			}

			_, err = r.Resolve(path, "docs")
			assert.ErrorIs(t, err, ErrEntryNotFound)
		})
	}
}
