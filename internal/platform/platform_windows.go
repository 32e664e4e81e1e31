//go:build windows

package platform

import (
	"os"
	"path/filepath"
)

type native struct{}

// UserDataDir returns %LOCALAPPDATA%.
func (native) UserDataDir() (string, error) {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir, nil
	}
	// os.UserCacheDir resolves to %LocalAppData% on Windows.
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return "", ErrNoDataDir
	}
	return dir, nil
}

func (native) GhostscriptBinary() string {
	return filepath.Join("bin", "gswin64c.exe")
}
