package locator

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropdf/internal/platform"
)

const appName = "DragDropPDF"

var configBytes = []byte("{\n  \"base_args\": [],\n  \"high\": {\"dPDFSETTINGS\": \"/prepress\"}\n}\n")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setup creates an install dir holding config.json and an empty data root.
func setup(t *testing.T) (nominal, dataRoot string) {
	t.Helper()
	tmp := t.TempDir()
	installDir := filepath.Join(tmp, "install")
	dataRoot = filepath.Join(tmp, "data")
	require.NoError(t, os.MkdirAll(installDir, 0755))
	nominal = filepath.Join(installDir, "config.json")
	require.NoError(t, os.WriteFile(nominal, configBytes, 0644))
	return nominal, dataRoot
}

func denyWrites(l *Locator) {
	l.probe = func(path string) error {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}
}

func TestResolve_WritableLocal(t *testing.T) {
	nominal, dataRoot := setup(t)

	l := New(nominal, appName, platform.Fixed{DataDir: dataRoot}, quietLogger())
	got, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, nominal, got)

	data, err := os.ReadFile(nominal)
	require.NoError(t, err)
	assert.Equal(t, configBytes, data, "the write check must leave the config untouched")

	assert.NoDirExists(t, filepath.Join(dataRoot, appName))
}

func TestResolve_ReadOnlyLocalCopiesToFallback(t *testing.T) {
	nominal, dataRoot := setup(t)

	l := New(nominal, appName, platform.Fixed{DataDir: dataRoot}, quietLogger())
	denyWrites(l)

	got, err := l.Resolve()
	require.NoError(t, err)

	want := filepath.Join(dataRoot, appName, "config.json")
	assert.Equal(t, want, got)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, configBytes, data)

	entries, err := os.ReadDir(filepath.Dir(want))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files should remain")
}

func TestResolve_ReadOnlyFileOnDisk(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file mode permissions are not enforced for this user")
	}
	nominal, dataRoot := setup(t)
	require.NoError(t, os.Chmod(nominal, 0444))

	l := New(nominal, appName, platform.Fixed{DataDir: dataRoot}, quietLogger())
	got, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataRoot, appName, "config.json"), got)
}

func TestResolve_ExistingFallbackWins(t *testing.T) {
	nominal, dataRoot := setup(t)

	fallback := filepath.Join(dataRoot, appName, "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fallback), 0755))
	require.NoError(t, os.WriteFile(fallback, []byte(`{"low": {}}`), 0644))

	l := New(nominal, appName, platform.Fixed{DataDir: dataRoot}, quietLogger())
	l.probe = func(string) error {
		t.Error("write check should not run when the fallback exists")
		return nil
	}

	got, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, fallback, got)
}

func TestResolve_NotFound(t *testing.T) {
	tmp := t.TempDir()
	nominal := filepath.Join(tmp, "config.json")

	l := New(nominal, appName, platform.Fixed{DataDir: filepath.Join(tmp, "data")}, quietLogger())
	_, err := l.Resolve()
	require.ErrorIs(t, err, ErrConfigNotFound)
	assert.Contains(t, err.Error(), nominal)
}

func TestResolve_CopyFailure(t *testing.T) {
	nominal, dataRoot := setup(t)

	// A regular file where the app directory should go makes MkdirAll fail.
	require.NoError(t, os.MkdirAll(dataRoot, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataRoot, appName), nil, 0644))

	l := New(nominal, appName, platform.Fixed{DataDir: dataRoot}, quietLogger())
	denyWrites(l)

	_, err := l.Resolve()
	var provisionErr *ProvisionError
	require.ErrorAs(t, err, &provisionErr)
	assert.Equal(t, "mkdir", provisionErr.Op)
	assert.NotNil(t, provisionErr.Unwrap())
}

func TestCopyFile_FailureLeavesNoDestination(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "config.json")

	// Reading a directory fails after the destination would have been opened.
	err := copyFile(t.TempDir(), dst)
	require.Error(t, err)

	assert.NoFileExists(t, dst)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyFile_ReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	require.NoError(t, os.WriteFile(src, configBytes, 0644))
	require.NoError(t, os.WriteFile(dst, []byte("stale and much longer than the new content"), 0644))

	require.NoError(t, copyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, configBytes, data)
}

func TestResolve_NoDataRoot(t *testing.T) {
	nominal, _ := setup(t)

	l := New(nominal, appName, platform.Fixed{}, quietLogger())
	got, err := l.Resolve()
	require.NoError(t, err, "writable local config should not need a data root")
	assert.Equal(t, nominal, got)

	denyWrites(l)
	_, err = l.Resolve()
	var provisionErr *ProvisionError
	require.ErrorAs(t, err, &provisionErr)
	assert.ErrorIs(t, err, platform.ErrNoDataDir)
}

func TestResolve_OtherProbeError(t *testing.T) {
	nominal, dataRoot := setup(t)
	busy := errors.New("device busy")

	l := New(nominal, appName, platform.Fixed{DataDir: dataRoot}, quietLogger())
	l.probe = func(string) error { return busy }

	_, err := l.Resolve()
	require.ErrorIs(t, err, busy)

	var provisionErr *ProvisionError
	assert.False(t, errors.As(err, &provisionErr), "non-permission errors should not trigger a copy")
}
