package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fxvfs/pkg/archive"
	"fxvfs/pkg/config"
	"fxvfs/pkg/env"
	"fxvfs/pkg/host"
	"fxvfs/pkg/logger"
	"fxvfs/pkg/vfs"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
)

const usage = `usage:
  fxvfs ls <archive> [pattern]
  fxvfs cat <identifier>
  fxvfs stat <identifier>
  fxvfs probe <path>...
`

var errUsage = errors.New("invalid arguments")

func main() {
	// Load environment variables for config and logger
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables")
	}

	// Initialize logger early so config loading can use it
	logger.Init(env.LogLevel())

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	// The config file may change the level or add the log file
	if cfg.LogToFile {
		logger.InitWithFile(cfg.LogLevel)
	} else {
		logger.SetLevel(cfg.LogLevel)
	}
	defer logger.Close()

	plugin := vfs.Load(host.MapAPI(cfg.Host), cfg)

	if err := run(plugin, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		logger.Error("Command failed", "args", os.Args[1:], "err", err)
		logger.Close()
		os.Exit(1)
	}
}

// run executes one subcommand against the plugin.
func run(p *vfs.Plugin, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "ls":
		if len(rest) > 2 {
			return errUsage
		}
		var selector func(host.DirEntry) bool
		if len(rest) == 2 {
			if selector, err = entryGlob(p.Schemes()[0], rest[1]); err != nil {
				return err
			}
		}
		var entries []host.DirEntry
		entries, err = p.Scandir(rest[0], selector, nil)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintln(out, e.Name)
		}
		return nil

	case "cat":
		if len(rest) != 1 {
			return errUsage
		}
		f, err := p.Open(rest[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return copyFile(out, f)

	case "stat":
		if len(rest) != 1 {
			return errUsage
		}
		f, err := p.OpenFile(rest[0])
		if err != nil {
			return err
		}
		defer f.Close()
		fmt.Fprintf(out, "length: %d\narchive: %s\nentry: %s\nordinal: %d\n", f.Length(), f.ArchivePath(), f.Name(), f.Ordinal())
		return nil

	case "probe":
		for _, path := range rest {
			typ, err := archive.IdentifyFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\tcontainer=%t\ttype=%s\n", path, p.IsContainer(path), typ.Name())
		}
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

// copyFile drains f through ReadElements in fixed-size chunks.
func copyFile(w io.Writer, f host.File) error {
	buf := make([]byte, 32*1024)
	for {
		n := f.ReadElements(buf, 1, len(buf))
		if n == 0 {
			return nil
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
}

// entryGlob selects entries whose path inside the archive matches pattern.
// "**" crosses directory separators.
func entryGlob(scheme, pattern string) (func(host.DirEntry) bool, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", errUsage, pattern)
	}
	return func(e host.DirEntry) bool {
		id, err := vfs.ParseIdentifier(scheme, e.Name)
		if err != nil {
			return false
		}
		ok, _ := doublestar.Match(pattern, id.EntryPath)
		return ok
	}, nil
}
