package compression

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"dropdf/internal/profile"
)

// Compressor runs Ghostscript with arguments taken from a profile document.
type Compressor struct {
	ghostscriptPath string
	profilePath     string
	logger          *slog.Logger
}

// NewCompressor creates a compressor that reads profilePath on every request.
func NewCompressor(ghostscriptPath, profilePath string, logger *slog.Logger) *Compressor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compressor{
		ghostscriptPath: ghostscriptPath,
		profilePath:     profilePath,
		logger:          logger,
	}
}

// BuildArgs assembles the Ghostscript argument vector in fixed order:
// base args, tier flags, output flag, input file.
func BuildArgs(doc *profile.Document, tierName, inputPath, outputPath string) ([]string, error) {
	tier, ok := doc.Tier(tierName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTierNotFound, tierName)
	}

	args := doc.EffectiveBaseArgs()
	for _, flag := range tier.Flags {
		args = append(args, flag.Arg())
	}
	args = append(args, "-sOutputFile="+outputPath, inputPath)
	return args, nil
}

// Args loads the profile and returns the arguments a request would run with.
func (c *Compressor) Args(req Request) ([]string, error) {
	doc, err := profile.Load(c.profilePath)
	if err != nil {
		return nil, err
	}
	return BuildArgs(doc, req.Tier, req.Input, req.Output)
}

// Compress runs Ghostscript for req and blocks until it exits.
// No retries are made and partial output is left in place on failure.
func (c *Compressor) Compress(ctx context.Context, req Request) (*Result, error) {
	args, err := c.Args(req)
	if err != nil {
		c.logger.Error("Failed to prepare ghostscript arguments",
			"tier", req.Tier,
			"input", req.Input,
			"error", err)
		return nil, err
	}

	c.logger.Debug("Running ghostscript",
		"path", c.ghostscriptPath,
		"args", strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.ghostscriptPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			failure := &ExitError{
				Code:   exitErr.ExitCode(),
				Stdout: stdout.String(),
				Stderr: stderr.String(),
			}
			c.logger.Error("Ghostscript failed",
				"code", failure.Code,
				"stdout", failure.Stdout,
				"stderr", failure.Stderr)
			return nil, failure
		}
		c.logger.Error("Failed to start ghostscript", "path", c.ghostscriptPath, "error", err)
		return nil, &LaunchError{Path: c.ghostscriptPath, Err: err}
	}

	c.logger.Info("Compression finished",
		"input", req.Input,
		"output", req.Output,
		"tier", req.Tier,
		"duration", duration)

	return &Result{
		Args:     args,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}, nil
}

// IsAvailable checks if the Ghostscript binary exists and is executable.
func (c *Compressor) IsAvailable() bool {
	if c.ghostscriptPath == "" {
		return false
	}
	stat, err := os.Stat(c.ghostscriptPath)
	if err != nil || stat.IsDir() {
		return false
	}
	return stat.Mode()&0111 != 0 || strings.HasSuffix(strings.ToLower(c.ghostscriptPath), ".exe")
}

// GhostscriptPath returns the path to the Ghostscript executable.
func (c *Compressor) GhostscriptPath() string {
	return c.ghostscriptPath
}

// ProfilePath returns the profile document this compressor reads.
func (c *Compressor) ProfilePath() string {
	return c.profilePath
}
