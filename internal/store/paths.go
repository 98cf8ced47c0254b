package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDir  = "guessr"
	dbFile  = "guessr.db"
	logFile = "guessr.log"
)

// DefaultDBPath returns $XDG_DATA_HOME/guessr/guessr.db, falling back to
// ~/.local/share/guessr/guessr.db, and creates its directory.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, appDir, dbFile)
	return p, EnsureDir(p)
}

// LogPath returns the log file kept beside the database at dbPath.
func LogPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), logFile)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
