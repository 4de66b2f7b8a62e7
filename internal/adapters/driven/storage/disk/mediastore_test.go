package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaStore_WriteAndRead(t *testing.T) {
	store := NewMediaStore()
	path := filepath.Join(t.TempDir(), "_extracted_videos", "IMG_0001.mp4")

	err := store.WriteFile(context.Background(), path, []byte("video bytes"))
	require.NoError(t, err)

	data, err := store.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []byte("video bytes"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestMediaStore_WriteFile_Replaces(t *testing.T) {
	store := NewMediaStore()
	path := filepath.Join(t.TempDir(), "clip.mp4")

	require.NoError(t, store.WriteFile(context.Background(), path, []byte("first")))
	require.NoError(t, store.WriteFile(context.Background(), path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestMediaStore_ReadFile_NotExist(t *testing.T) {
	store := NewMediaStore()
	path := filepath.Join(t.TempDir(), "missing.jpg")

	_, err := store.ReadFile(context.Background(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read "+path)
}

func TestMediaStore_WriteFile_ParentIsFile(t *testing.T) {
	store := NewMediaStore()
	parent := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))

	err := store.WriteFile(context.Background(), filepath.Join(parent, "clip.mp4"), []byte("data"))

	assert.Error(t, err)
}

func TestMediaStore_CancelledContext(t *testing.T) {
	store := NewMediaStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ReadFile(ctx, "whatever.jpg")
	assert.ErrorIs(t, err, context.Canceled)

	err = store.WriteFile(ctx, filepath.Join(t.TempDir(), "clip.mp4"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMediaStore_Exists(t *testing.T) {
	store := NewMediaStore()
	dir := t.TempDir()
	file := filepath.Join(dir, "IMG.jpg")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, store.Exists(file))
	assert.False(t, store.Exists(filepath.Join(dir, "missing.jpg")))
	assert.False(t, store.Exists(dir), "directories are not media files")
}
