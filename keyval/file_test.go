package keyval_test

import (
	"path/filepath"
	"testing"

	"github.com/studyhub-app/studyhub-go/keyval"
	"github.com/stretchr/testify/require"
)

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := keyval.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(keyval.TokenKey, "tok-1"))
	require.NoError(t, store.Set(keyval.UserKey, `{"_id":"u1"}`))

	reopened, err := keyval.OpenFile(path)
	require.NoError(t, err)

	v, ok := reopened.Get(keyval.TokenKey)
	require.True(t, ok)
	require.Equal(t, "tok-1", v)

	v, ok = reopened.Get(keyval.UserKey)
	require.True(t, ok)
	require.Equal(t, `{"_id":"u1"}`, v)
}

func TestFileStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := keyval.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(keyval.TokenKey, "tok-1"))
	require.NoError(t, store.Delete(keyval.TokenKey))
	require.NoError(t, store.Delete("never-existed"))

	_, ok := store.Get(keyval.TokenKey)
	require.False(t, ok)

	reopened, err := keyval.OpenFile(path)
	require.NoError(t, err)
	_, ok = reopened.Get(keyval.TokenKey)
	require.False(t, ok)
}

func TestOpenFileMissingIsEmpty(t *testing.T) {
	store, err := keyval.OpenFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	_, ok := store.Get(keyval.TokenKey)
	require.False(t, ok)
}
