package compression

import (
	"errors"
	"fmt"
	"time"
)

// ErrTierNotFound is returned when the requested tier is not in the profile.
var ErrTierNotFound = errors.New("quality tier not found")

// Request describes one compression job.
type Request struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Tier   string `json:"tier"`
}

// Result describes a Ghostscript run that exited with status 0.
type Result struct {
	Args     []string      `json:"args"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Duration time.Duration `json:"duration"`
}

// LaunchError reports that Ghostscript could not be started at all.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch ghostscript %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitError reports a Ghostscript run that ended with a non-zero status.
// The output file must be treated as not produced.
type ExitError struct {
	Code   int
	Stdout string
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("ghostscript exited with code %d", e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}
