package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultDataDir  = ".boardkit"
	SQLiteFileName  = "boards.db"
	ConfigFileName  = "config.toml"
	GlobalConfigDir = ".config/boardkit"
)

// Paths provides path resolution for boardkit data files.
type Paths struct {
	dataDir string
}

// NewPaths creates a Paths rooted at dataDir. An empty dataDir resolves to
// ~/.boardkit, falling back to ./.boardkit when the home dir is unknown.
func NewPaths(dataDir string) *Paths {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, DefaultDataDir)
	}
	return &Paths{dataDir: dataDir}
}

// DataDir returns the directory holding persisted data.
func (p *Paths) DataDir() string {
	return p.dataDir
}

// KeyPath returns the file used by the file backend for a store key.
func (p *Paths) KeyPath(key string) string {
	return filepath.Join(p.dataDir, key+".json")
}

// SQLitePath returns the default database file for the sqlite backend.
func (p *Paths) SQLitePath() string {
	return filepath.Join(p.dataDir, SQLiteFileName)
}

// GlobalConfigPath returns the path to the user's config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}
