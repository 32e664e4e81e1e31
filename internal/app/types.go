package app

import (
	"errors"
	"time"
)

var (
	// ErrNotDirectory is returned when an output directory is not an existing directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrConfigExists is returned by WriteDefaultConfig when the file is already present.
	ErrConfigExists = errors.New("configuration file already exists")
	// ErrOutputIsInput is returned when a job would write over its own input.
	ErrOutputIsInput = errors.New("output would overwrite input")
)

// Job statuses reported in an Outcome.
const (
	StatusCompleted = "completed"
	StatusFailed    = "error"
)

// Outcome represents the result of compressing a single file
type Outcome struct {
	JobID            string        `json:"job_id"`
	Input            string        `json:"input"`
	Output           string        `json:"output"`
	Tier             string        `json:"tier"`
	OriginalSize     int64         `json:"original_size"`
	CompressedSize   int64         `json:"compressed_size"`
	CompressionRatio float64       `json:"compression_ratio"`
	Duration         time.Duration `json:"duration"`
	Status           string        `json:"status"`
	Error            string        `json:"error,omitempty"`

	Err error `json:"-"`
}

// DropResult collects the outcomes of one drop, in drop order.
type DropResult struct {
	Files   []Outcome `json:"files"`
	Skipped []string  `json:"skipped,omitempty"`
}

// Failed counts the outcomes that did not complete.
func (r *DropResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Status != StatusCompleted {
			n++
		}
	}
	return n
}

// TierInfo describes one tier of the profile document.
type TierInfo struct {
	Name    string   `json:"name"`
	Picture string   `json:"picture"`
	Flags   []string `json:"flags"`
	Current bool     `json:"current"`
}

// AppStats holds statistics for the running process
type AppStats struct {
	FilesCompressed int   `json:"files_compressed"`
	FilesFailed     int   `json:"files_failed"`
	OriginalBytes   int64 `json:"original_bytes"`
	CompressedBytes int64 `json:"compressed_bytes"`
}

// DataSaved returns the bytes saved across completed jobs.
func (s AppStats) DataSaved() int64 {
	return s.OriginalBytes - s.CompressedBytes
}

// Status reports where the application reads and writes its state.
type Status struct {
	AppName              string `json:"app_name"`
	ConfigPath           string `json:"config_path"`
	DatabasePath         string `json:"database_path"`
	GhostscriptPath      string `json:"ghostscript_path"`
	GhostscriptAvailable bool   `json:"ghostscript_available"`
	Tier                 string `json:"tier"`
	Picture              string `json:"picture"`
	OutputDir            string `json:"output_dir"`
}
