package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/adapters/persistence/sqlite"
)

func openStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	store, _ := openStore(t)
	ctx := context.Background()

	got, err := store.Load(ctx, "demo", "frame/table")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Save(ctx, "demo", "frame/table", map[string]string{"displayRowCount": "10", "label": "Rows"}))
	require.NoError(t, store.Save(ctx, "other", "frame/table", map[string]string{"displayRowCount": "3"}))

	got, err = store.Load(ctx, "demo", "frame/table")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"displayRowCount": "10", "label": "Rows"}, got)

	require.NoError(t, store.Save(ctx, "demo", "frame/table", map[string]string{"displayRowCount": "20"}))
	got, err = store.Load(ctx, "demo", "frame/table")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"displayRowCount": "20"}, got, "save replaces every value")

	require.NoError(t, store.Save(ctx, "demo", "frame/table", nil))
	got, err = store.Load(ctx, "demo", "frame/table")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.Load(ctx, "other", "frame/table")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"displayRowCount": "3"}, got)
}

func TestStore_Reopen(t *testing.T) {
	t.Parallel()

	store, path := openStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "demo", "frame/name", map[string]string{"label": "Kept"}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Load(ctx, "demo", "frame/name")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"label": "Kept"}, got)
}

func TestStore_HealthCheck(t *testing.T) {
	t.Parallel()

	store, _ := openStore(t)

	assert.Equal(t, "preferences", store.Name())
	assert.NoError(t, store.HealthCheck(context.Background()))

	require.NoError(t, store.Close())
	assert.Error(t, store.HealthCheck(context.Background()))
}
