// Package locator decides which physical configuration file a run should use.
//
// The nominal file lives next to the program. When the install directory is not
// writable, the file is copied once into the per-user data directory and that
// copy is used from then on.
package locator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"dropdf/internal/platform"
)

const dirPermissions = 0755

// Locator resolves the configuration path for a single run.
type Locator struct {
	nominal  string
	appName  string
	platform platform.Platform
	logger   *slog.Logger

	// probe checks that path can be opened for writing without altering it.
	probe func(path string) error
}

// New creates a locator for the nominal config path.
func New(nominal, appName string, p platform.Platform, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		nominal:  nominal,
		appName:  appName,
		platform: p,
		logger:   logger,
		probe:    probeAppend,
	}
}

// FallbackPath returns <data root>/<app name>/<nominal file name>.
func (l *Locator) FallbackPath() (string, error) {
	dir, err := platform.AppDataDir(l.platform, l.appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(l.nominal)), nil
}

// Resolve returns the path that all reads and writes should use during this run.
func (l *Locator) Resolve() (string, error) {
	local, err := filepath.Abs(l.nominal)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", l.nominal, err)
	}

	fallback, fallbackErr := l.FallbackPath()
	if fallbackErr != nil {
		l.logger.Warn("Per-user config location unavailable", "error", fallbackErr)
	} else if exists(fallback) {
		l.logger.Debug("Using per-user config", "path", fallback)
		return fallback, nil
	}

	if !exists(local) {
		return "", fmt.Errorf("%w: %s", ErrConfigNotFound, local)
	}

	err = l.probe(local)
	if err == nil {
		l.logger.Debug("Using local config", "path", local)
		return local, nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return "", fmt.Errorf("probe %s: %w", local, err)
	}

	if fallbackErr != nil {
		return "", &ProvisionError{Op: "locate", Path: local, Err: fallbackErr}
	}

	l.logger.Info("Local config is read-only, copying to per-user location",
		"local", local,
		"fallback", fallback)

	if err := os.MkdirAll(filepath.Dir(fallback), dirPermissions); err != nil {
		return "", &ProvisionError{Op: "mkdir", Path: filepath.Dir(fallback), Err: err}
	}
	if err := copyFile(local, fallback); err != nil {
		return "", &ProvisionError{Op: "copy", Path: fallback, Err: err}
	}

	return fallback, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func probeAppend(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// copyFile writes src to a temporary file next to dst and renames it into
// place. A failed copy leaves no partial dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, sourceFile); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
