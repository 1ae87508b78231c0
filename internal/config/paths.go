package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	Home         string // ~/.tipkit
	ConfigPath   string // ~/.tipkit/config.json
	LogsDir      string // ~/.tipkit/logs
	ScenariosDir string // ~/.tipkit/scenarios
}

// DefaultPaths returns the default paths configuration. TIPKIT_HOME
// overrides the home directory.
func DefaultPaths() (*Paths, error) {
	if home := strings.TrimSpace(os.Getenv("TIPKIT_HOME")); home != "" {
		return PathsAt(home), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsAt(filepath.Join(home, ".tipkit")), nil
}

// PathsAt lays out the standard files under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Home:         root,
		ConfigPath:   filepath.Join(root, "config.json"),
		LogsDir:      filepath.Join(root, "logs"),
		ScenariosDir: filepath.Join(root, "scenarios"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
