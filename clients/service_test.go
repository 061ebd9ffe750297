package clients_test

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
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/clients"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
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

		c := validClient()
		c.ClientID = ""
		_, err := clients.NewService(fb.client()).Create(context.Background(), c)
		require.ErrorIs(t, err, consoleerrors.ErrInvalidForm)
		require.Equal(t, int32(0), fb.requests.Load())
	})

	t.Run("registers the client", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"clientId":"portal","clientName":"Admin Portal","clientSecret":"generated"}}`))
		})

		created, err := clients.NewService(fb.client()).Create(context.Background(), validClient())
		require.NoError(t, err)
		require.Equal(t, "generated", created.ClientSecret)
		require.Equal(t, api.RouteOAuth2Client, fb.lastReq.URL.Path)
	})
}

func TestService_Update(t *testing.T) {
	original := &clients.Client{
		ClientID:     "portal",
		ClientName:   "Admin Portal",
		RedirectUris: []string{"https://portal.example.com/callback"},
		GrantTypes:   []string{clients.GrantAuthorizationCode},
		Status:       "approved",
	}

	t.Run("unchanged edit skips the network call", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})

		edited := *original
		edited.ClientName = "  Admin Portal "

		updated, changed, err := clients.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.NoError(t, err)
		require.False(t, changed)
		require.Same(t, original, updated)
		require.Equal(t, int32(0), fb.requests.Load())
	})

	t.Run("renaming submits a single replace", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"clientId":"portal","clientName":"Fleet Portal"}`))
		})

		edited := *original
		edited.ClientName = "Fleet Portal"

		updated, changed, err := clients.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, "Fleet Portal", updated.ClientName)
		require.Equal(t, api.RouteOAuth2Client+"/portal", fb.lastReq.URL.Path)

		var ops []jsonpatch.Operation
		require.NoError(t, json.Unmarshal(fb.lastBody, &ops))
		require.Len(t, ops, 1)
		require.Equal(t, jsonpatch.OpReplace, ops[0].Op)
		require.Equal(t, "/clientName", ops[0].Path)
		require.Equal(t, "Fleet Portal", ops[0].Value)
	})

	t.Run("secrets never appear in a patch", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"clientId":"portal","clientName":"Fleet Portal"}`))
		})

		withSecret := *original
		withSecret.ClientSecret = "hunter2"
		edited := withSecret
		edited.ClientName = "Fleet Portal"

		_, _, err := clients.NewService(fb.client()).Update(context.Background(), &withSecret, &edited)
		require.NoError(t, err)
		require.NotContains(t, string(fb.lastBody), "hunter2")
		require.NotContains(t, string(fb.lastBody), "clientSecret")
	})

	t.Run("empty acknowledgment applies the ops locally", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		edited := *original
		edited.ClientName = "Fleet Portal"

		updated, changed, err := clients.NewService(fb.client()).Update(context.Background(), original, &edited)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, int32(1), fb.requests.Load())
		require.Equal(t, "Fleet Portal", updated.ClientName)
		require.Equal(t, original.RedirectUris, updated.RedirectUris)
	})
}

func TestService_ListAndDelete(t *testing.T) {
	t.Run("list passes pagination", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[{"clientId":"portal"},{"clientId":"mobile"}]}`))
		})

		items, err := clients.NewService(fb.client()).List(context.Background(), 0, 25)
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, "25", fb.lastReq.URL.Query().Get("limit"))
	})

	t.Run("delete targets the client path", func(t *testing.T) {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, clients.NewService(fb.client()).Delete(context.Background(), "portal"))
		require.Equal(t, http.MethodDelete, fb.lastReq.Method)
		require.Equal(t, api.RouteOAuth2Client+"/portal", fb.lastReq.URL.Path)
	})
}
