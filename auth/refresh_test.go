package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/sessions"
)

func newStore(t *testing.T) *sessions.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session")
	return sessions.NewStore(path, sessions.WithSecret("test-secret"))
}

func expiredSession(now time.Time) *sessions.Session {
	return &sessions.Session{
		User:         &sessions.Profile{UserName: "ada", Roles: []string{"ADMIN"}},
		AccessToken:  "stale-access",
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
		ExpiresAt:    now.Add(-time.Minute),
	}
}

func TestTokenSource_AccessToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid token is returned without a network call", func(t *testing.T) {
		store := newStore(t)
		session := expiredSession(now)
		session.ExpiresAt = now.Add(time.Hour)
		require.NoError(t, store.Save(session))

		ts, err := auth.NewTokenSource(store, "http://127.0.0.1:1/oauth2/token", "console",
			auth.WithTokenNowFunc(func() time.Time { return now }))
		require.NoError(t, err)

		token, err := ts.AccessToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "stale-access", token)
	})

	t.Run("no session means login required", func(t *testing.T) {
		ts, err := auth.NewTokenSource(newStore(t), "http://127.0.0.1:1/oauth2/token", "console")
		require.NoError(t, err)

		_, err = ts.AccessToken(context.Background())
		require.ErrorIs(t, err, consoleerrors.ErrLoginRequired)
	})

	t.Run("expired token without refresh token forces logout", func(t *testing.T) {
		store := newStore(t)
		session := expiredSession(now)
		session.RefreshToken = ""
		require.NoError(t, store.Save(session))

		ts, err := auth.NewTokenSource(store, "http://127.0.0.1:1/oauth2/token", "console",
			auth.WithTokenNowFunc(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = ts.AccessToken(context.Background())
		require.ErrorIs(t, err, consoleerrors.ErrLoginRequired)
		require.Nil(t, ts.Session())

		cached, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, cached)
	})
}

func TestTokenSource_Refresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expired token triggers a refresh", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			require.NoError(t, r.ParseForm())
			require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
			require.Equal(t, "refresh-1", r.Form.Get("refresh_token"))
			require.Equal(t, "console", r.Form.Get("client_id"))
			_, _ = w.Write([]byte(`{"access_token":"fresh-access","refresh_token":"refresh-2","token_type":"Bearer","expires_in":3600}`))
		}))
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Save(expiredSession(now)))

		ts, err := auth.NewTokenSource(store, server.URL, "console",
			auth.WithTokenNowFunc(func() time.Time { return now }))
		require.NoError(t, err)

		token, err := ts.AccessToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "fresh-access", token)
		require.Equal(t, int32(1), calls.Load())

		// Rotated refresh token and new expiry are persisted.
		session := ts.Session()
		require.Equal(t, "refresh-2", session.RefreshToken)
		require.True(t, session.ExpiresAt.Equal(now.Add(time.Hour)))
		require.Equal(t, "ada", session.User.UserName)

		cached, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, cached)
		require.Equal(t, "fresh-access", cached.AccessToken)
	})

	t.Run("concurrent callers share one refresh", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			time.Sleep(50 * time.Millisecond)
			_, _ = w.Write([]byte(`{"access_token":"fresh-access","token_type":"Bearer","expires_in":3600}`))
		}))
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Save(expiredSession(now)))

		ts, err := auth.NewTokenSource(store, server.URL, "console",
			auth.WithTokenNowFunc(func() time.Time { return now }))
		require.NoError(t, err)

		const callers = 16
		tokens := make([]string, callers)
		errs := make([]error, callers)

		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tokens[i], errs[i] = ts.AccessToken(context.Background())
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			require.NoError(t, errs[i])
			require.Equal(t, "fresh-access", tokens[i])
		}
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("refresh without rotation keeps the old refresh token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"fresh-access","token_type":"Bearer","expires_in":3600}`))
		}))
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Save(expiredSession(now)))

		ts, err := auth.NewTokenSource(store, server.URL, "console",
			auth.WithTokenNowFunc(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = ts.AccessToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "refresh-1", ts.Session().RefreshToken)
	})

	t.Run("rejected refresh clears the session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Save(expiredSession(now)))

		ts, err := auth.NewTokenSource(store, server.URL, "console",
			auth.WithTokenNowFunc(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = ts.AccessToken(context.Background())
		require.ErrorIs(t, err, consoleerrors.ErrLoginRequired)
		require.Nil(t, ts.Session())

		cached, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, cached)

		// Subsequent calls fail fast without hitting the network.
		_, err = ts.AccessToken(context.Background())
		require.ErrorIs(t, err, consoleerrors.ErrLoginRequired)
	})
}

func TestTokenSource_SetSession(t *testing.T) {
	store := newStore(t)
	ts, err := auth.NewTokenSource(store, "http://127.0.0.1:1/oauth2/token", "console")
	require.NoError(t, err)

	session := &sessions.Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, ts.SetSession(session))
	require.Equal(t, session, ts.Session())

	cached, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, cached)

	require.NoError(t, ts.SetSession(nil))
	require.Nil(t, ts.Session())

	cached, err = store.Load()
	require.NoError(t, err)
	require.Nil(t, cached)
}
