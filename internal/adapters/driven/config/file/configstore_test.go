package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".motionsplit"), dir)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("frames.ffmpeg_path", "/usr/bin/ffmpeg")
	require.NoError(t, err)

	val, ok := store.Get("frames.ffmpeg_path")
	assert.True(t, ok)
	assert.Equal(t, "/usr/bin/ffmpeg", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("extract.output_dir", "videos"))
	require.NoError(t, store.Set("extract.workers", 4))
	require.NoError(t, store.Set("extract.recursive", true))
	require.NoError(t, store.Set("frames.fps", 2.5))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("extract.output_dir"), "videos"},
		{"int", store.GetInt("extract.workers"), 4},
		{"bool", store.GetBool("extract.recursive"), true},
		{"float", store.GetFloat("frames.fps"), 2.5},
		{"int widened to float", store.GetFloat("extract.workers"), 4.0},
		{"float narrowed to int", store.GetInt("frames.fps"), 2},
		{"missing string", store.GetString("nonexistent"), ""},
		{"missing int", store.GetInt("nonexistent"), 0},
		{"missing float", store.GetFloat("nonexistent"), 0.0},
		{"missing bool", store.GetBool("nonexistent"), false},
		{"wrong type string", store.GetString("extract.workers"), ""},
		{"wrong type int", store.GetInt("extract.output_dir"), 0},
		{"wrong type float", store.GetFloat("extract.recursive"), 0.0},
		{"wrong type bool", store.GetBool("extract.output_dir"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("frames.ffmpeg_path", "/opt/ffmpeg"))
	require.NoError(t, store1.Set("extract.tail_window", 512000))
	require.NoError(t, store1.Set("extract.require_motion_flag", true))
	require.NoError(t, store1.Set("watch.rate", 2.5))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg", store2.GetString("frames.ffmpeg_path"))
	assert.Equal(t, 512000, store2.GetInt("extract.tail_window"))
	assert.True(t, store2.GetBool("extract.require_motion_flag"))
	assert.Equal(t, 2.5, store2.GetFloat("watch.rate"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("extract.workers", 8))
	require.NoError(t, store.Set("frames.format", "png"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[extract]")
	assert.Contains(t, content, "[frames]")
	assert.False(t, strings.Contains(content, `"extract.workers"`))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[extract]
require_motion_flag = true
tail_window = 1024

[frames]
ffmpeg_path = "/usr/local/bin/ffmpeg"
`
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.True(t, store.GetBool("extract.require_motion_flag"))
	assert.Equal(t, 1024, store.GetInt("extract.tail_window"))
	assert.Equal(t, "/usr/local/bin/ffmpeg", store.GetString("frames.ffmpeg_path"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("extract.overwrite", true))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "concurrent.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_ = store.GetString(key)
			_ = store.GetBool(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, store.GetInt("concurrent.key3"))
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["extract.output_dir"] = "clips"
	store.mu.Unlock()

	require.NoError(t, store.Save())

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "clips", store2.GetString("extract.output_dir"))
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to force a write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("another", "value")
	assert.Error(t, err)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"extract": map[string]any{
			"workers": int64(4),
			"deep":    map[string]any{"key": "v"},
		},
		"top": true,
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, map[string]any{
		"extract.workers":  int64(4),
		"extract.deep.key": "v",
		"top":              true,
	}, flat)
}

func TestNestMap(t *testing.T) {
	t.Run("round trips through flattenMap", func(t *testing.T) {
		flat := map[string]any{
			"extract.workers": 4,
			"extract.output":  "videos",
			"frames.fps":      1.5,
			"plain":           "x",
		}

		assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
	})

	t.Run("value and table prefix collide", func(t *testing.T) {
		flat := map[string]any{
			"extract":         "scalar",
			"extract.workers": 4,
		}

		nested := nestMap(flat)

		assert.Equal(t, "scalar", nested["extract"])
		assert.Equal(t, 4, nested["extract.workers"])
	})
}
