package sessions_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/sessions"
)

func newTestStore(t *testing.T) (*sessions.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session")
	return sessions.NewStore(path, sessions.WithSecret("test-secret")), path
}

func testSession() *sessions.Session {
	return &sessions.Session{
		User: &sessions.Profile{
			ID:       "u1",
			UserName: "ada",
			Email:    "ada@example.com",
			Roles:    []string{"ADMIN"},
		},
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Scope:        "openid profile",
		ExpiresAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.Save(testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "access", loaded.AccessToken)
	require.Equal(t, "ada", loaded.User.UserName)
	require.True(t, loaded.ExpiresAt.Equal(testSession().ExpiresAt))
}

func TestStore_FileIsEncrypted(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Save(testSession()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "access")
	require.NotContains(t, string(raw), "ada@example.com")
}

func TestStore_Load(t *testing.T) {
	t.Run("missing file means not logged in", func(t *testing.T) {
		store, _ := newTestStore(t)
		loaded, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, loaded)
	})

	t.Run("garbage file means not logged in", func(t *testing.T) {
		store, path := newTestStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("not a session"), 0o600))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, loaded)
	})

	t.Run("wrong secret means not logged in", func(t *testing.T) {
		store, path := newTestStore(t)
		require.NoError(t, store.Save(testSession()))

		other := sessions.NewStore(path, sessions.WithSecret("different-secret"))
		loaded, err := other.Load()
		require.NoError(t, err)
		require.Nil(t, loaded)
	})
}

func TestStore_Clear(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestStore_SaveNil(t *testing.T) {
	store, _ := newTestStore(t)
	require.Error(t, store.Save(nil))
}
