// Package config holds run-time settings and builds the application logger.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"dropdf/internal/platform"
	"dropdf/internal/session"
)

const (
	// AppName names the per-user data directory.
	AppName = "DragDropPDF"
	// DefaultConfigFile is the nominal profile document, relative to the working directory.
	DefaultConfigFile = "config.json"
	// EnvPrefix is prepended to environment overrides, e.g. DROPDF_LOG_LEVEL.
	EnvPrefix = "DROPDF"
)

// Setting keys, shared with the CLI flag names.
const (
	KeyConfig      = "config"
	KeyGhostscript = "ghostscript"
	KeyDataDir     = "data-dir"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
)

// Config holds application configuration
type Config struct {
	AppName         string
	ConfigFile      string
	GhostscriptPath string
	DataDir         string
	DatabasePath    string
	LogLevel        string
	LogFormat       string
	Platform        platform.Platform
	Logger          *slog.Logger
}

// SetDefaults registers default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyConfig, DefaultConfigFile)
	v.SetDefault(KeyGhostscript, "")
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// New builds a Config from v. Log output goes to logOut.
func New(v *viper.Viper, logOut io.Writer) (*Config, error) {
	cfg := &Config{
		AppName:    AppName,
		ConfigFile: v.GetString(KeyConfig),
		DataDir:    v.GetString(KeyDataDir),
		LogLevel:   strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:  strings.ToLower(v.GetString(KeyLogFormat)),
	}
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = DefaultConfigFile
	}

	logger, err := NewLogger(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger

	cfg.Platform = platform.WithDataDir(platform.Current(), cfg.DataDir)
	cfg.setupDatabasePath()
	cfg.GhostscriptPath = ResolveGhostscript(cfg.Platform, v.GetString(KeyGhostscript))

	cfg.Logger.Debug("Configuration loaded",
		"config", cfg.ConfigFile,
		"ghostscript", cfg.GhostscriptPath,
		"database", cfg.DatabasePath)

	return cfg, nil
}

func (c *Config) setupDatabasePath() {
	dir, err := platform.AppDataDir(c.Platform, c.AppName)
	if err != nil {
		c.Logger.Warn("No per-user data directory, session will not persist", "error", err)
		return
	}
	c.DatabasePath = filepath.Join(dir, session.FileName)
}

// NewLogger returns an slog logger backed by a charmbracelet/log handler.
// format is one of text, logfmt or json.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter log.Formatter
	switch format {
	case "", "text":
		formatter = log.TextFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q: want text, logfmt or json", format)
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          "dropdf",
	})
	return slog.New(handler), nil
}

// ResolveGhostscript picks the Ghostscript executable. An explicit override
// wins. Otherwise the platform's bundled binary is tried relative to the
// working directory, then next to the executable, then on PATH. When nothing
// is found the bundled relative path is returned so the failure surfaces at
// launch time.
func ResolveGhostscript(p platform.Platform, override string) string {
	override = strings.TrimSpace(override)
	if override != "" {
		if resolved, err := exec.LookPath(override); err == nil {
			return resolved
		}
		return override
	}

	bundled := p.GhostscriptBinary()
	candidates := []string{bundled}
	if exePath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exePath), bundled))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs
			}
			return candidate
		}
	}

	name := strings.TrimSuffix(filepath.Base(bundled), filepath.Ext(bundled))
	if resolved, err := exec.LookPath(name); err == nil {
		return resolved
	}
	return bundled
}
