package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"dropdf/internal/compression"
)

// Drop compresses every PDF in paths with the session tier, one after another.
// Paths without a .pdf extension are skipped. A failed file does not stop
// the rest of the drop.
func (a *App) Drop(ctx context.Context, paths []string) (*DropResult, error) {
	sess, err := a.Session()
	if err != nil {
		return nil, err
	}

	result := &DropResult{}
	for _, path := range paths {
		if !isPDF(path) {
			a.logger.Debug("Ignoring dropped file", "file", path)
			result.Skipped = append(result.Skipped, path)
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		output := OutputPath(path, sess.OutputDir)
		outcome, _ := a.Compress(ctx, path, output, sess.Tier)
		result.Files = append(result.Files, *outcome)
	}
	return result, nil
}

// Compress runs a single compression job. An empty tier means the session tier.
// The returned Outcome is never nil; its Err matches the returned error.
func (a *App) Compress(ctx context.Context, input, output, tier string) (*Outcome, error) {
	outcome := &Outcome{
		JobID:  uuid.New().String(),
		Input:  input,
		Output: output,
		Tier:   tier,
	}

	if samePath(input, output) {
		return a.fail(outcome, fmt.Errorf("%w: %s", ErrOutputIsInput, output))
	}

	if outcome.Tier == "" {
		sess, err := a.Session()
		if err != nil {
			return a.fail(outcome, err)
		}
		outcome.Tier = sess.Tier
	}

	a.logger.Info("Compressing file", "job", outcome.JobID, "input", input, "tier", outcome.Tier)

	res, err := a.compressor.Compress(ctx, compression.Request{Input: input, Output: output, Tier: outcome.Tier})
	if err != nil {
		return a.fail(outcome, err)
	}

	outcome.Status = StatusCompleted
	outcome.Duration = res.Duration
	a.recordSizes(outcome)
	a.stats.FilesCompressed++
	return outcome, nil
}

func (a *App) fail(outcome *Outcome, err error) (*Outcome, error) {
	a.logger.Error("Error processing file", "job", outcome.JobID, "file", outcome.Input, "error", err)
	outcome.Status = StatusFailed
	outcome.Error = err.Error()
	outcome.Err = err
	a.stats.FilesFailed++
	return outcome, err
}

// recordSizes fills in sizes for statistics. Ghostscript's exit status is
// authoritative, so missing files here are not an error.
func (a *App) recordSizes(outcome *Outcome) {
	originalInfo, err := os.Stat(outcome.Input)
	if err != nil {
		return
	}
	compressedInfo, err := os.Stat(outcome.Output)
	if err != nil {
		a.logger.Warn("Compressed file not found after success", "output", outcome.Output)
		return
	}

	outcome.OriginalSize = originalInfo.Size()
	outcome.CompressedSize = compressedInfo.Size()
	if outcome.OriginalSize > 0 {
		outcome.CompressionRatio = float64(outcome.OriginalSize-outcome.CompressedSize) / float64(outcome.OriginalSize) * 100
	}
	a.stats.OriginalBytes += outcome.OriginalSize
	a.stats.CompressedBytes += outcome.CompressedSize
}

// OutputPath names the compressed copy of input: <dir>/<base>.pdf, where dir
// is outputDir or the input's own directory. When that would overwrite the
// input, _compressed is appended to the base name.
func OutputPath(input, outputDir string) string {
	name := filepath.Base(input)
	base := strings.TrimSuffix(name, filepath.Ext(name))

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	out := filepath.Join(dir, base+".pdf")
	if samePath(out, input) {
		out = filepath.Join(dir, base+"_compressed.pdf")
	}
	return out
}

// samePath reports whether a and b name the same file. Names are compared
// case-insensitively since the target filesystems usually are. Existing files
// are also compared by identity, which catches links.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		absA, absB = filepath.Clean(a), filepath.Clean(b)
	}
	if strings.EqualFold(absA, absB) {
		return true
	}

	infoA, err := os.Stat(absA)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(absB)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Args returns the Ghostscript arguments a job would run with, without running it.
// An empty tier means the session tier.
func (a *App) Args(input, output, tier string) ([]string, error) {
	if tier == "" {
		sess, err := a.Session()
		if err != nil {
			return nil, err
		}
		tier = sess.Tier
	}
	return a.compressor.Args(compression.Request{Input: input, Output: output, Tier: tier})
}
