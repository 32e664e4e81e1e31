//go:build !windows && !darwin

package platform

import (
	"os"
	"path/filepath"
)

type native struct{}

// UserDataDir returns $XDG_DATA_HOME, defaulting to ~/.local/share.
func (native) UserDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "", ErrNoDataDir
	}
	return filepath.Join(homeDir, ".local", "share"), nil
}

func (native) GhostscriptBinary() string {
	return filepath.Join("bin", "gs")
}
