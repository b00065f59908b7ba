// Package host defines the plugin surface a media player exposes to
// virtual filesystem plugins, and the callbacks it offers them.
package host

import (
	"strconv"
	"unicode/utf8"
)

// Plugin API version implemented by this module.
const (
	APIVersionMajor = 1
	APIVersionMinor = 0
)

// NameMax is the capacity of a directory entry name, mirroring a POSIX
// d_name buffer minus its terminator.
const NameMax = 255

// PluginType tags what kind of plugin a descriptor describes.
type PluginType int

const (
	PluginVFS PluginType = iota + 1
)

// Info describes a plugin to the host.
type Info struct {
	APIVersionMajor int
	APIVersionMinor int
	VersionMajor    int
	VersionMinor    int
	Type            PluginType
	ID              string
	Name            string
	Description     string
	Copyright       string
	Website         string
}

// API is the set of host callbacks available to plugins.
type API interface {
	ConfGetStr(key, def string) string
	ConfGetInt64(key string, def int64) int64
}

// File is an open handle served by a VFS plugin. Seek whence values are
// io.SeekStart, io.SeekCurrent and io.SeekEnd.
type File interface {
	// ReadElements copies up to size*count bytes into p and returns the
	// number of whole elements copied.
	ReadElements(p []byte, size, count int) int
	Seek(offset int64, whence int) (int64, error)
	Tell() int64
	Rewind()
	Length() int64
	Close() error
}

// DirEntry is one result of a plugin directory scan.
type DirEntry struct {
	Name string
}

// NewDirEntry builds an entry, truncating name to NameMax bytes without
// splitting a UTF-8 sequence.
func NewDirEntry(name string) DirEntry {
	if len(name) <= NameMax {
		return DirEntry{Name: name}
	}
	cut := NameMax
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return DirEntry{Name: name[:cut]}
}

// VFS is implemented by plugins that serve identifiers under their schemes.
type VFS interface {
	Info() Info
	Schemes() []string
	// IsStreaming reports whether files only support forward reads.
	IsStreaming() bool
	Open(name string) (File, error)
	IsContainer(name string) bool
	// Scandir lists dir. selector filters entries and less orders them;
	// either may be nil.
	Scandir(dir string, selector func(DirEntry) bool, less func(a, b DirEntry) bool) ([]DirEntry, error)
}

// MapAPI serves configuration from a map. The zero value has no keys.
type MapAPI map[string]string

func (m MapAPI) ConfGetStr(key, def string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return def
}

func (m MapAPI) ConfGetInt64(key string, def int64) int64 {
	v, ok := m[key]
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
