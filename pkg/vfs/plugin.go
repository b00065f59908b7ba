package vfs

import (
	"errors"
	"slices"

	"fxvfs/pkg/config"
	"fxvfs/pkg/host"
	"fxvfs/pkg/logger"
)

// Host configuration keys read by Load.
const (
	ConfScheme       = "vfs_fx.scheme"
	ConfMaxEntrySize = "vfs_fx.max_entry_size"
)

var (
	_ host.VFS  = (*Plugin)(nil)
	_ host.File = (*File)(nil)
)

// Plugin serves archive entries to a host. It holds everything the plugin
// needs, so several plugins with different settings can coexist.
type Plugin struct {
	scheme   string
	resolver *Resolver
}

// Load builds a Plugin from cfg. Valid values configured in the host take
// precedence over cfg; invalid ones are ignored. api may be nil.
func Load(api host.API, cfg *config.Config) *Plugin {
	if api == nil {
		api = host.MapAPI(nil)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	scheme := api.ConfGetStr(ConfScheme, cfg.Scheme)
	if err := config.ValidateScheme(scheme); err != nil {
		logger.Warn("Ignoring host scheme", "key", ConfScheme, "err", err, "using", cfg.Scheme)
		scheme = cfg.Scheme
	}
	maxEntrySize := api.ConfGetInt64(ConfMaxEntrySize, cfg.MaxEntrySize)
	if maxEntrySize < 0 {
		logger.Warn("Ignoring host max entry size", "key", ConfMaxEntrySize, "value", maxEntrySize, "using", cfg.MaxEntrySize)
		maxEntrySize = cfg.MaxEntrySize
	}

	logger.Debug("VFS plugin loaded", "scheme", scheme, "max_entry_size", maxEntrySize)
	return &Plugin{
		scheme:   scheme,
		resolver: NewResolver(maxEntrySize),
	}
}

func (p *Plugin) Info() host.Info {
	return host.Info{
		APIVersionMajor: host.APIVersionMajor,
		APIVersionMinor: host.APIVersionMinor,
		VersionMajor:    1,
		VersionMinor:    0,
		Type:            host.PluginVFS,
		ID:              "vfs_fx",
		Name:            "Archive vfs",
		Description:     "play files directly from zip/rar/gzip/7-zip files",
		Copyright:       "GNU General Public License, version 2 or later",
		Website:         "https://github.com/kode54",
	}
}

// Schemes returns the identifier prefixes this plugin answers to.
func (p *Plugin) Schemes() []string {
	return []string{p.scheme}
}

// IsStreaming is false: files support random access.
func (p *Plugin) IsStreaming() bool {
	return false
}

// Open resolves an identifier to a file handle.
func (p *Plugin) Open(name string) (host.File, error) {
	f, err := p.resolver.Open(p.scheme, name)
	if err != nil {
		if !errors.Is(err, ErrNotThisScheme) {
			logger.Debug("Open failed", "name", name, "err", err)
		}
		return nil, err
	}
	return f, nil
}

// OpenFile is Open returning the concrete type.
func (p *Plugin) OpenFile(name string) (*File, error) {
	return p.resolver.Open(p.scheme, name)
}

func (p *Plugin) IsContainer(name string) bool {
	return IsContainer(name)
}

// Scandir lists the entries of the archive dir as identifiers.
func (p *Plugin) Scandir(dir string, selector func(host.DirEntry) bool, less func(a, b host.DirEntry) bool) ([]host.DirEntry, error) {
	ids, err := Scandir(p.scheme, dir)
	if err != nil {
		return nil, err
	}

	entries := make([]host.DirEntry, 0, len(ids))
	for _, id := range ids {
		e := host.NewDirEntry(id)
		if selector != nil && !selector(e) {
			continue
		}
		entries = append(entries, e)
	}
	if less != nil {
		slices.SortStableFunc(entries, func(a, b host.DirEntry) int {
			switch {
			case less(a, b):
				return -1
			case less(b, a):
				return 1
			}
			return 0
		})
	}
	return entries, nil
}
