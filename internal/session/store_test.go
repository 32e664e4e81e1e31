package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGet_SeedsNewSession(t *testing.T) {
	store := setupTestStore(t)

	sess, err := store.Get(Seed{Tier: "medium", Picture: "pdflow.jpg", OutputDir: "/tmp/out"})
	require.NoError(t, err)

	assert.Equal(t, uint(sessionID), sess.ID)
	assert.Equal(t, "medium", sess.Tier)
	assert.Equal(t, "pdflow.jpg", sess.Picture)
	assert.Equal(t, "/tmp/out", sess.OutputDir)
}

func TestGet_IgnoresSeedOnceCreated(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(Seed{Tier: "medium"})
	require.NoError(t, err)

	sess, err := store.Get(Seed{Tier: "low", OutputDir: "/elsewhere"})
	require.NoError(t, err)
	assert.Equal(t, "medium", sess.Tier)
	assert.Empty(t, sess.OutputDir)
}

func TestSetTier(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(Seed{Tier: "medium", Picture: "pdflow.jpg", OutputDir: "/out"})
	require.NoError(t, err)

	_, err = store.SetTier("high", "pdf.jpg")
	require.NoError(t, err)

	sess, err := store.Get(Seed{})
	require.NoError(t, err)
	assert.Equal(t, "high", sess.Tier)
	assert.Equal(t, "pdf.jpg", sess.Picture)
	assert.Equal(t, "/out", sess.OutputDir, "output dir should be preserved")
}

func TestSetOutputDir(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(Seed{Tier: "low"})
	require.NoError(t, err)

	sess, err := store.SetOutputDir("/var/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/var/pdf", sess.OutputDir)
	assert.Equal(t, "low", sess.Tier, "tier should be preserved")
}

func TestSetTier_WithoutExistingSession(t *testing.T) {
	store := setupTestStore(t)

	sess, err := store.SetTier("low", "pdfmedium.jpg")
	require.NoError(t, err)
	assert.Equal(t, "low", sess.Tier)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), FileName)

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.Get(Seed{Tier: "medium"})
	require.NoError(t, err)
	_, err = store.SetOutputDir("/saved")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	sess, err := reopened.Get(Seed{Tier: "high"})
	require.NoError(t, err)
	assert.Equal(t, "medium", sess.Tier)
	assert.Equal(t, "/saved", sess.OutputDir)
}
