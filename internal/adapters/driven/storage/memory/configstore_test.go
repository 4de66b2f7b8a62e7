package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("frames.ffmpeg_path", "ffmpeg"))
	require.NoError(t, store.Set("frames.ffmpeg_path", "/usr/bin/ffmpeg"))

	val, ok := store.Get("frames.ffmpeg_path")
	assert.True(t, ok)
	assert.Equal(t, "/usr/bin/ffmpeg", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 42, 42},
		{"int64", int64(42), 42},
		{"float64", 42.9, 42},
		{"wrong type", "42", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("key", tt.value))
			assert.Equal(t, tt.want, store.GetInt("key"))
		})
	}
}

func TestConfigStore_GetFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"float64", 2.5, 2.5},
		{"int", 3, 3},
		{"int64", int64(5), 5},
		{"wrong type", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("key", tt.value))
			assert.Equal(t, tt.want, store.GetFloat("key"))
		})
	}
}

func TestConfigStore_GetStringAndBool(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("extract.output_dir", "clips"))
	require.NoError(t, store.Set("extract.recursive", true))

	assert.Equal(t, "clips", store.GetString("extract.output_dir"))
	assert.True(t, store.GetBool("extract.recursive"))

	assert.Equal(t, "", store.GetString("extract.recursive"))
	assert.False(t, store.GetBool("extract.output_dir"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveAndLoad_NoOp(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("key", "value"))

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "value", store.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("watch.burst", n)
			_ = store.GetInt("watch.burst")
			_ = store.GetFloat("watch.burst")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("watch.burst")
	assert.True(t, ok)
}

func TestNewConfigStoreFrom_CopiesSeed(t *testing.T) {
	seed := map[string]any{"extract.workers": 8}
	store := NewConfigStoreFrom(seed)

	require.NoError(t, store.Set("extract.workers", 2))

	assert.Equal(t, 2, store.GetInt("extract.workers"))
	assert.Equal(t, 8, seed["extract.workers"])
}
