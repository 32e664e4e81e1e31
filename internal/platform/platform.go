// Package platform resolves the OS-specific locations the application depends on:
// the per-user writable data root and the bundled Ghostscript binary.
// Each supported OS has exactly one provider, selected at build time.
package platform

import (
	"errors"
	"path/filepath"
)

// ErrNoDataDir is returned when no per-user data root can be determined.
var ErrNoDataDir = errors.New("per-user data directory unavailable")

// Platform exposes the platform capabilities the locator and compressor need.
type Platform interface {
	// UserDataDir returns the per-user writable root, without the app name.
	UserDataDir() (string, error)
	// GhostscriptBinary returns the bundled binary path relative to the install dir.
	GhostscriptBinary() string
}

// Current returns the provider for the running OS.
func Current() Platform {
	return native{}
}

// Fixed is a Platform with explicit values, used for overrides.
type Fixed struct {
	DataDir string
	Binary  string
}

func (f Fixed) UserDataDir() (string, error) {
	if f.DataDir == "" {
		return "", ErrNoDataDir
	}
	return filepath.Clean(f.DataDir), nil
}

func (f Fixed) GhostscriptBinary() string {
	return f.Binary
}

// WithDataDir wraps p so that UserDataDir returns dir. An empty dir returns p unchanged.
func WithDataDir(p Platform, dir string) Platform {
	if dir == "" {
		return p
	}
	return Fixed{DataDir: dir, Binary: p.GhostscriptBinary()}
}

// AppDataDir joins the platform data root with the application name.
func AppDataDir(p Platform, appName string) (string, error) {
	root, err := p.UserDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appName), nil
}
