package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func openSQLite(t *testing.T) Store {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	testStoreBehavior(t, openSQLite)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := OpenSQLite(ctx, path, nil)
	require.NoError(t, err)
	saved := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	require.NoError(t, store.Put(ctx, Template{
		Name:     "messenger bag",
		Note:     "long strap",
		SavedAt:  saved,
		Document: templateDoc("messenger bag"),
	}))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(ctx, path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "messenger bag")
	require.NoError(t, err)
	assert.Equal(t, "long strap", got.Note)
	assert.True(t, got.SavedAt.Equal(saved), "got %v, want %v", got.SavedAt, saved)
	assert.Len(t, got.Document.Shapes, 1)
}

func TestSQLiteStoreCreatesDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "catalog.db")

	store, err := OpenSQLite(ctx, path, nil)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(ctx, Template{Name: "belt", Document: templateDoc("belt")}))
	_, err = store.Get(ctx, "belt")
	assert.NoError(t, err)
}
