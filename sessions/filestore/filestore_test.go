package filestore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/sessions"
	"github.com/jrsteele09/recyclemate/sessions/filestore"
	"github.com/jrsteele09/recyclemate/users"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := filestore.NewRepo(path)
	require.NoError(t, first.Set(sessions.Session{
		Token: "t1",
		Role:  users.RoleCollector,
		User:  json.RawMessage(`{"id":"c1"}`),
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second instance reads what the first wrote
	second := filestore.NewRepo(path)
	got, err := second.Get()
	require.NoError(t, err)
	require.Equal(t, "t1", got.Token)
	require.Equal(t, users.RoleCollector, got.Role)

	require.NoError(t, second.Clear())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	_, err = first.Get()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestFileStorage_RemoveKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := filestore.New(path)

	require.NoError(t, storage.SetAll(map[string]string{"token": "t1", "theme": "dark"}))
	require.NoError(t, storage.Remove("token"))

	_, ok, err := storage.Get("token")
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err := storage.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)
}

func TestFileStorage_MissingAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is empty", func(t *testing.T) {
		storage := filestore.New(filepath.Join(dir, "missing.json"))
		_, ok, err := storage.Get("token")
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, storage.Remove(sessions.Keys...))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		_, err := filestore.NewRepo(path).Get()
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse session file")
	})
}
