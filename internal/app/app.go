// Package app is the drop and settings boundary of the widget: it wires the
// config locator, the profile document, the session store and the compressor.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"dropdf/internal/compression"
	"dropdf/internal/config"
	"dropdf/internal/locator"
	"dropdf/internal/profile"
	"dropdf/internal/session"
)

const memoryDatabase = ":memory:"

// App represents the main application structure
type App struct {
	config     *config.Config
	logger     *slog.Logger
	configPath string
	store      *session.Store
	compressor *compression.Compressor
	stats      AppStats
}

// New resolves the configuration file, opens the session store and seeds it
// from the profile document on first use.
func New(cfg *config.Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	configPath, err := locator.New(cfg.ConfigFile, cfg.AppName, cfg.Platform, logger).Resolve()
	if err != nil {
		return nil, err
	}

	doc, err := profile.Load(configPath)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	sess, err := store.Get(seedFrom(doc))
	if err != nil {
		store.Close()
		return nil, err
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		configPath: configPath,
		store:      store,
		compressor: compression.NewCompressor(cfg.GhostscriptPath, configPath, logger),
	}

	logger.Info("Application initialized",
		"config", configPath,
		"tier", sess.Tier,
		"ghostscript_available", a.compressor.IsAvailable())
	return a, nil
}

func openStore(dbPath string) (*session.Store, error) {
	if dbPath == "" {
		return session.Open(memoryDatabase)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return session.Open(dbPath)
}

// seedFrom takes the initial session from the document's current and path
// entries. Without a current entry the first tier is used.
func seedFrom(doc *profile.Document) session.Seed {
	seed := session.Seed{OutputDir: doc.Path}
	if doc.Current != nil {
		seed.Tier = doc.Current.Tier
		seed.Picture = doc.Current.Picture
		return seed
	}
	if names := doc.TierNames(); len(names) > 0 {
		seed.Tier = names[0]
		seed.Picture = doc.Picture(names[0])
	}
	return seed
}

// ConfigPath returns the configuration file resolved for this run.
func (a *App) ConfigPath() string {
	return a.configPath
}

// Session returns the current session state.
func (a *App) Session() (*session.Session, error) {
	return a.store.Get(session.Seed{})
}

// Stats returns statistics for this process.
func (a *App) Stats() AppStats {
	return a.stats
}

// Status returns application status information
func (a *App) Status() (*Status, error) {
	sess, err := a.Session()
	if err != nil {
		return nil, err
	}
	return &Status{
		AppName:              a.config.AppName,
		ConfigPath:           a.configPath,
		DatabasePath:         a.config.DatabasePath,
		GhostscriptPath:      a.compressor.GhostscriptPath(),
		GhostscriptAvailable: a.compressor.IsAvailable(),
		Tier:                 sess.Tier,
		Picture:              sess.Picture,
		OutputDir:            sess.OutputDir,
	}, nil
}

// Close releases the session store.
func (a *App) Close() error {
	return a.store.Close()
}

// WriteDefaultConfig writes the bundled profile document to path.
// An existing file is left untouched unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return err
	}

	if _, err := f.Write(profile.Default()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
