//go:build darwin

package platform

import (
	"os"
	"path/filepath"
)

type native struct{}

// UserDataDir returns ~/Library/Application Support.
func (native) UserDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "", ErrNoDataDir
	}
	return filepath.Join(homeDir, "Library", "Application Support"), nil
}

func (native) GhostscriptBinary() string {
	return filepath.Join("bin", "gs")
}
