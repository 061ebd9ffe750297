package users_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/users"
)

type fakeBackend struct {
	server   *httptest.Server
	requests atomic.Int32
	lastBody []byte
	lastReq  *http.Request
}

func newFakeBackend(t *testing.T, handler http.HandlerFunc) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.requests.Add(1)
		fb.lastReq = r.Clone(r.Context())
		fb.lastBody, _ = io.ReadAll(r.Body)
		handler(w, r)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) client() *api.Client {
	return api.NewClient(fb.server.URL)
}

func TestService_Create(t *testing.T) {
	t.Run("invalid form never reaches the network", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})

		u := validUser()
		u.Email = "broken"
		_, err := users.NewService(fb.client()).Create(context.Background(), u)
		require.ErrorIs(t, err, consoleerrors.ErrInvalidForm)
		require.Equal(t, int32(0), fb.requests.Load())
	})

	t.Run("posts the form and unwraps the result", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[{"id":"u1","userName":"ada.lovelace","status":"PENDING"}]}`))
		})

		created, err := users.NewService(fb.client()).Create(context.Background(), validUser())
		require.NoError(t, err)
		require.Equal(t, "u1", created.ID)
		require.Equal(t, users.StatusPending, created.Status)
		require.Equal(t, http.MethodPost, fb.lastReq.Method)
		require.Equal(t, api.RouteUsers, fb.lastReq.URL.Path)
	})
}

func TestService_Update(t *testing.T) {
	original := &users.User{
		ID:       "u1",
		UserName: "ada.lovelace",
		Email:    "ada@example.com",
		Roles:    []string{"USER"},
		Status:   users.StatusActive,
	}

	t.Run("unchanged edit skips the network call", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})

		edited := *original
		edited.Email = "  ada@example.com  "

		updated, changed, err := users.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.NoError(t, err)
		require.False(t, changed)
		require.Same(t, original, updated)
		require.Equal(t, int32(0), fb.requests.Load())
	})

	t.Run("changed field submits a patch", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"u1","userName":"ada.lovelace","email":"countess@example.com","roles":["USER"],"status":"ACTIVE"}`))
		})

		edited := *original
		edited.Email = "countess@example.com"

		updated, changed, err := users.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, "countess@example.com", updated.Email)

		require.Equal(t, http.MethodPatch, fb.lastReq.Method)
		require.Equal(t, api.RouteUsers+"/u1", fb.lastReq.URL.Path)
		require.Equal(t, api.ContentTypeJSONPatch, fb.lastReq.Header.Get("Content-Type"))

		var ops []jsonpatch.Operation
		require.NoError(t, json.Unmarshal(fb.lastBody, &ops))
		require.Len(t, ops, 1)
		require.Equal(t, jsonpatch.OpReplace, ops[0].Op)
		require.Equal(t, "/email", ops[0].Path)
	})

	t.Run("password never appears in a patch", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"u1","userName":"ada.lovelace","email":"ada@example.com","roles":["USER"]}`))
		})

		edited := *original
		edited.Password = "NewPassw0rd"
		edited.FirstName = "Ada"

		_, _, err := users.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.NoError(t, err)
		require.NotContains(t, string(fb.lastBody), "password")
		require.NotContains(t, string(fb.lastBody), "NewPassw0rd")
	})

	t.Run("invalid edit never reaches the network", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})

		edited := *original
		edited.Roles = nil

		_, _, err := users.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.ErrorIs(t, err, consoleerrors.ErrInvalidForm)
		require.Equal(t, int32(0), fb.requests.Load())
	})

	t.Run("empty acknowledgment applies the ops locally", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		edited := *original
		edited.Email = "countess@example.com"

		updated, changed, err := users.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, int32(1), fb.requests.Load())
		require.Equal(t, "countess@example.com", updated.Email)
		require.Equal(t, original.UserName, updated.UserName)
		require.Equal(t, original.Roles, updated.Roles)
	})
}

func TestService_Filter(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":"u1","userName":"ada.lovelace"},{"id":"u2","userName":"grace.hopper"}]}`))
	})

	criteria := users.FilterCriteria{Roles: []string{"ADMIN"}, Status: []users.Status{users.StatusActive}}
	matches, err := users.NewService(fb.client()).Filter(context.Background(), criteria)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	require.Equal(t, http.MethodPost, fb.lastReq.Method)
	require.Equal(t, api.RouteUserFilter, fb.lastReq.URL.Path)
	require.JSONEq(t, `{"roles":["ADMIN"],"status":["ACTIVE"]}`, string(fb.lastBody))
}

func TestService_List(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	items, err := users.NewService(fb.client()).List(context.Background(), 20, 10)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, "20", fb.lastReq.URL.Query().Get("offset"))
	require.Equal(t, "10", fb.lastReq.URL.Query().Get("limit"))
}

func TestService_GetAndDelete(t *testing.T) {
	t.Run("get unwraps a single user", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[{"id":"u1","userName":"ada.lovelace"}]}`))
		})

		u, err := users.NewService(fb.client()).Get(context.Background(), "u1")
		require.NoError(t, err)
		require.Equal(t, "ada.lovelace", u.UserName)
	})

	t.Run("missing user maps to the not-found sentinel", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"um-404","message":"user not found"}`))
		})

		_, err := users.NewService(fb.client()).Get(context.Background(), "missing")
		require.ErrorIs(t, err, consoleerrors.ErrNotFound)
	})

	t.Run("delete targets the user path", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, users.NewService(fb.client()).Delete(context.Background(), "u1"))
		require.Equal(t, http.MethodDelete, fb.lastReq.Method)
		require.Equal(t, api.RouteUsers+"/u1", fb.lastReq.URL.Path)
	})
}
