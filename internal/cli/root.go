// Package cli exposes the drop and settings callbacks as cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"dropdf/internal/app"
	"dropdf/internal/config"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		return 1
	}
	return 0
}

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	rootCmd := &cobra.Command{
		Use:   "dropdf",
		Short: "Compress PDFs with Ghostscript at a chosen quality tier",
		Long: `dropdf compresses PDF files with Ghostscript.

Quality tiers and Ghostscript arguments come from config.json next to the
program. When that directory is not writable the file is copied to the
per-user data directory and used from there.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyConfig, config.DefaultConfigFile, "Path to the profile document")
	flags.String(config.KeyGhostscript, "", "Ghostscript executable (default: bundled binary, then PATH)")
	flags.String(config.KeyDataDir, "", "Override the per-user data root")
	flags.String(config.KeyLogLevel, "warn", "Log level: debug, info, warn, error")
	flags.String(config.KeyLogFormat, "text", "Log format: text, logfmt, json")
	for _, key := range []string{config.KeyConfig, config.KeyGhostscript, config.KeyDataDir, config.KeyLogLevel, config.KeyLogFormat} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(
		newCompressCommand(v),
		newArgsCommand(v),
		newTiersCommand(v),
		newSelectCommand(v),
		newOutputCommand(v),
		newWhereCommand(v),
		newInitCommand(v),
		newStatusCommand(v),
	)
	return rootCmd
}

// openApp builds the runtime configuration and starts the application.
func openApp(cmd *cobra.Command, v *viper.Viper) (*app.App, error) {
	cfg, err := config.New(v, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

// isTTY reports whether f is attached to a terminal.
func isTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
