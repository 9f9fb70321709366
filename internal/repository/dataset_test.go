package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const twoRoots = `[
	{"root":"un","meaning_en":"not","examples":["undo","unhappy"]},
	{"root":"re","meaning_en":"again","examples":["redo"]}
]`

func writeDataset(t *testing.T, dir, rel, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_SameOriginPath(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "data/roots.json", twoRoots)

	repo := NewDatasetRepository(map[string]string{"roots": "/data/roots.json"}, dir, time.Second, zap.NewNop())

	entries, err := repo.Load(context.Background(), "roots")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "un", entries[0].Root)
	assert.Equal(t, []string{"undo", "unhappy"}, entries[0].Examples)
}

func TestLoad_UnknownDataset(t *testing.T) {
	repo := NewDatasetRepository(map[string]string{}, t.TempDir(), time.Second, zap.NewNop())

	_, err := repo.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestLoad_RejectsPathOutsideStaticDir(t *testing.T) {
	repo := NewDatasetRepository(map[string]string{
		"escape": "/data/../../secret.json",
		"root":   "/",
	}, t.TempDir(), time.Second, zap.NewNop())

	_, err := repo.Load(context.Background(), "escape")
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = repo.Load(context.Background(), "root")
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "bad.json", `{"root":"un"}`)

	repo := NewDatasetRepository(map[string]string{"bad": "bad.json"}, dir, time.Second, zap.NewNop())

	_, err := repo.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestLoad_HTTP(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoRoots))
	}))
	defer srv.Close()

	repo := NewDatasetRepository(map[string]string{"remote": srv.URL + "/roots.json"}, "", time.Second, zap.NewNop())

	entries, err := repo.Load(context.Background(), "remote")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Second load is served from the cache.
	_, err = repo.Load(context.Background(), "remote")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoad_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	repo := NewDatasetRepository(map[string]string{"remote": srv.URL}, "", time.Second, zap.NewNop())

	_, err := repo.Load(context.Background(), "remote")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRefresh_ReplacesCacheAndKeepsOldSlices(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "roots.json", twoRoots)

	repo := NewDatasetRepository(map[string]string{"roots": "roots.json"}, dir, time.Second, zap.NewNop())

	before, err := repo.Load(context.Background(), "roots")
	require.NoError(t, err)

	writeDataset(t, dir, "roots.json", `[{"root":"bio"}]`)
	require.NoError(t, repo.Refresh(context.Background()))

	after, err := repo.Load(context.Background(), "roots")
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "bio", after[0].Root)

	require.Len(t, before, 2)
	assert.Equal(t, "un", before[0].Root)
}

func TestRefresh_FailureKeepsPreviousData(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "roots.json", twoRoots)

	repo := NewDatasetRepository(map[string]string{"roots": "roots.json"}, dir, time.Second, zap.NewNop())
	_, err := repo.Load(context.Background(), "roots")
	require.NoError(t, err)

	writeDataset(t, dir, "roots.json", `not json`)
	assert.Error(t, repo.Refresh(context.Background()))

	entries, err := repo.Load(context.Background(), "roots")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestNames_Sorted(t *testing.T) {
	repo := NewDatasetRepository(map[string]string{"b": "b.json", "a": "a.json"}, "", time.Second, zap.NewNop())

	assert.Equal(t, []string{"a", "b"}, repo.Names())
	assert.True(t, repo.Has("a"))
	assert.False(t, repo.Has("c"))
}
