package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxvfs/pkg/archive/archivetest"
	"fxvfs/pkg/vfs"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	entries := archivetest.Music()
	zipPath := archivetest.WriteZip(t, dir, "music.zip", entries)
	plain := archivetest.WriteFile(t, dir, "plain.txt", []byte("hi"))
	p := vfs.Load(nil, nil)

	var out bytes.Buffer
	require.NoError(t, run(p, []string{"ls", zipPath}, &out))
	assert.Equal(t, "fx://"+zipPath+":track1.mp3\nfx://"+zipPath+":track2.mp3\n", out.String())

	out.Reset()
	require.NoError(t, run(p, []string{"cat", "fx://" + zipPath + ":track2.mp3"}, &out))
	assert.Equal(t, entries[1].Data, out.Bytes())

	out.Reset()
	require.NoError(t, run(p, []string{"stat", "fx://" + zipPath + ":track2.mp3"}, &out))
	assert.Contains(t, out.String(), "length: 2000\n")
	assert.Contains(t, out.String(), "ordinal: 1\n")
	assert.Contains(t, out.String(), "entry: track2.mp3\n")
	assert.Contains(t, out.String(), "archive: "+zipPath+"\n")

	out.Reset()
	require.NoError(t, run(p, []string{"probe", zipPath, plain}, &out))
	assert.Equal(t, zipPath+"\tcontainer=true\ttype=zip\n"+plain+"\tcontainer=false\ttype=file\n", out.String())
}

func TestRun_lsPattern(t *testing.T) {
	path := archivetest.WriteZip(t, t.TempDir(), "album.zip", []archivetest.Entry{
		{Name: "cover.jpg", Data: []byte("jpg")},
		{Name: "cd1/01.flac", Data: []byte("a")},
		{Name: "cd2/01.flac", Data: []byte("b")},
		{Name: "notes.txt", Data: []byte("c")},
	})
	p := vfs.Load(nil, nil)

	var out bytes.Buffer
	require.NoError(t, run(p, []string{"ls", path, "**/*.flac"}, &out))
	assert.Equal(t, "fx://"+path+":cd1/01.flac\nfx://"+path+":cd2/01.flac\n", out.String())

	out.Reset()
	require.NoError(t, run(p, []string{"ls", path, "*.flac"}, &out))
	assert.Empty(t, out.String(), "single star stays within one directory")

	assert.ErrorIs(t, run(p, []string{"ls", path, "[bad"}, &out), errUsage)
}

func TestRun_errors(t *testing.T) {
	p := vfs.Load(nil, nil)
	var out bytes.Buffer

	assert.ErrorIs(t, run(p, nil, &out), errUsage)
	assert.ErrorIs(t, run(p, []string{"ls"}, &out), errUsage)
	assert.ErrorIs(t, run(p, []string{"extract", "x"}, &out), errUsage)
	assert.ErrorIs(t, run(p, []string{"cat", "fx://" + filepath.Join(t.TempDir(), "none.zip") + ":a"}, &out), vfs.ErrArchiveOpenFailed)
	assert.ErrorIs(t, run(p, []string{"cat", "/plain/path"}, &out), vfs.ErrNotThisScheme)
}
