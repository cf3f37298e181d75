package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "ember"
	databaseName = "ember.sqlite"

	dirPerm  = 0o750
	filePerm = 0o600
)

// Dirs are ember's per-user directories. Setting EMBER_HOME puts all of
// them under a single directory.
type Dirs struct {
	Config string
	Data   string
	State  string
}

// ResolveDirs applies the XDG base directory rules:
// config in $XDG_CONFIG_HOME/ember, history and fireproof list in
// $XDG_DATA_HOME/ember, logs and site data in $XDG_STATE_HOME/ember.
func ResolveDirs() (Dirs, error) {
	if home := os.Getenv("EMBER_HOME"); home != "" {
		return Dirs{Config: home, Data: home, State: home}, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, err
	}
	xdg := func(env string, fallback ...string) string {
		if base := os.Getenv(env); base != "" {
			return filepath.Join(base, appName)
		}
		return filepath.Join(append(append([]string{userHome}, fallback...), appName)...)
	}

	return Dirs{
		Config: xdg("XDG_CONFIG_HOME", ".config"),
		Data:   xdg("XDG_DATA_HOME", ".local", "share"),
		State:  xdg("XDG_STATE_HOME", ".local", "state"),
	}, nil
}

func (d Dirs) ConfigFile() string     { return filepath.Join(d.Config, "config.toml") }
func (d Dirs) DatabaseFile() string   { return filepath.Join(d.Data, databaseName) }
func (d Dirs) LogDir() string         { return filepath.Join(d.State, "logs") }
func (d Dirs) WebsiteDataDir() string { return filepath.Join(d.State, "website-data") }
func (d Dirs) FaviconDir() string     { return filepath.Join(d.State, "favicons") }

// Ensure creates the three directories.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Config, d.Data, d.State} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
