package paths

import (
	"os"

	"fxvfs/pkg/env"
)

// GetDataDir returns the data directory path.
// FXVFS_DATA_DIR wins when set. If running in Docker (/.dockerenv exists),
// returns /app/data. Otherwise returns current directory (.)
func GetDataDir() string {
	if dir := env.DataDir(); dir != "" {
		return dir
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		// Running in Docker container
		return "/app/data"
	}
	return "."
}
