package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDBSessionStore_Lifecycle(t *testing.T) {
	store, err := NewMemorySessionStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "token-1", 42, time.Hour))

	id, ok, err := store.Lookup(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	require.NoError(t, store.Delete(ctx, "token-1"))
	_, ok, err = store.Lookup(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLevelDBSessionStore_UnknownToken(t *testing.T) {
	store, err := NewMemorySessionStore()
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Lookup(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLevelDBSessionStore_Expiry(t *testing.T) {
	store, err := NewMemorySessionStore()
	require.NoError(t, err)
	defer store.Close()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := store.(*levelDBSessionStore)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "token-2", 7, time.Minute))

	now = now.Add(2 * time.Minute)
	_, ok, err := store.Lookup(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLevelDBSessionStore_PersistsOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions")
	ctx := context.Background()

	store, err := NewLevelDBSessionStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "token-3", 3, time.Hour))
	require.NoError(t, store.Close())

	reopened, err := NewLevelDBSessionStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	id, ok, err := reopened.Lookup(ctx, "token-3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)
}
