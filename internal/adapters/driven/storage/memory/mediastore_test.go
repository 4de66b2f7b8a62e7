package memory

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaStore_ReadWrite(t *testing.T) {
	store := NewMediaStore()
	ctx := context.Background()

	data := []byte("payload")
	require.NoError(t, store.WriteFile(ctx, "/out/a.mp4", data))
	data[0] = 'X'

	got, err := store.ReadFile(ctx, "/out/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got), "stored data must not alias the caller's slice")
	assert.True(t, store.Exists("/out/a.mp4"))
}

func TestMediaStore_ReadFile_Missing(t *testing.T) {
	store := NewMediaStore()

	_, err := store.ReadFile(context.Background(), "/missing.jpg")

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, store.Exists("/missing.jpg"))
}

func TestMediaStore_InjectedErrors(t *testing.T) {
	store := NewMediaStore()
	ctx := context.Background()
	boom := errors.New("disk on fire")

	store.Put("/in/a.jpg", []byte("x"))
	store.FailRead("/in/a.jpg", boom)
	store.FailWrite("/out/a.mp4", boom)

	_, err := store.ReadFile(ctx, "/in/a.jpg")
	assert.ErrorIs(t, err, boom)

	err = store.WriteFile(ctx, "/out/a.mp4", []byte("v"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, store.Exists("/out/a.mp4"))
}

func TestMediaStore_CancelledContext(t *testing.T) {
	store := NewMediaStore()
	store.Put("/in/a.jpg", []byte("x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ReadFile(ctx, "/in/a.jpg")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.WriteFile(ctx, "/out/a.mp4", nil), context.Canceled)
}
