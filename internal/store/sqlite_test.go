package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/store"
	"github.com/nhle/dayboard/tests/testutil"
)

func TestKeyValueRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	var got map[string]int
	found, err := s.Get(ctx, "demo:counts", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put(ctx, "demo:counts", map[string]int{"a": 1}))
	require.NoError(t, s.Put(ctx, "demo:counts", map[string]int{"a": 2}))

	found, err = s.Get(ctx, "demo:counts", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]int{"a": 2}, got)

	require.NoError(t, s.Delete(ctx, "demo:counts"))
	require.NoError(t, s.Delete(ctx, "demo:counts"))
	found, err = s.Get(ctx, "demo:counts", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeysByPrefix(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"water:2024-05-02", "water:2024-05-01", "notes:list", "water_x"} {
		require.NoError(t, s.Put(ctx, k, 1))
	}

	keys, err := s.Keys(ctx, "water:")
	require.NoError(t, err)
	assert.Equal(t, []string{"water:2024-05-01", "water:2024-05-02"}, keys)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dayboard.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	var v string
	found, err := s.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
}
