package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/sessions"
)

// fakePlatform serves just enough OIDC for the login flow: a discovery
// document and a token endpoint. No id_token is issued, so the flow
// builds the profile from access-token claims alone.
type fakePlatform struct {
	server      *httptest.Server
	accessToken string
	lastForm    url.Values
}

func newFakePlatform(t *testing.T, accessToken string) *fakePlatform {
	t.Helper()
	fp := &fakePlatform{accessToken: accessToken}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 fp.server.URL,
			"authorization_endpoint": fp.server.URL + "/oauth2/authorize",
			"token_endpoint":         fp.server.URL + "/oauth2/token",
			"jwks_uri":               fp.server.URL + "/oauth2/keys",
		})
	})
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		fp.lastForm = r.Form
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  fp.accessToken,
			"token_type":    "Bearer",
			"refresh_token": "refresh-1",
			"expires_in":    3600,
		})
	})

	fp.server = httptest.NewServer(mux)
	t.Cleanup(fp.server.Close)
	return fp
}

func freeLoopbackAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// completeLogin plays the browser's part: it follows the authorization
// URL's redirect_uri straight back with a code and the original state.
func completeLogin(t *testing.T, code string) func(string) error {
	t.Helper()
	return func(authURL string) error {
		parsed, err := url.Parse(authURL)
		require.NoError(t, err)

		query := parsed.Query()
		require.NotEmpty(t, query.Get("code_challenge"))
		require.Equal(t, "S256", query.Get("code_challenge_method"))

		callback := fmt.Sprintf("%s?code=%s&state=%s",
			query.Get("redirect_uri"), code, url.QueryEscape(query.Get("state")))
		go func() {
			resp, err := http.Get(callback)
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func TestFlow_Login(t *testing.T) {
	accessToken := signedToken(t, map[string]any{
		"sub":       "user-1",
		"accountId": "acc-1",
		"roles":     []string{"SUPER_ADMIN"},
	})
	platform := newFakePlatform(t, accessToken)

	store := sessions.NewStore(filepath.Join(t.TempDir(), "session"), sessions.WithSecret("test-secret"))

	flow, err := auth.NewFlow(platform.server.URL, "console", []string{"openid", "profile"},
		freeLoopbackAddr(t), store,
		auth.WithBrowserOpener(completeLogin(t, "code-1")),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := flow.Login(ctx)
	require.NoError(t, err)
	require.Equal(t, accessToken, session.AccessToken)
	require.Equal(t, "refresh-1", session.RefreshToken)
	require.Equal(t, "user-1", session.User.ID)
	require.Equal(t, "acc-1", session.User.AccountID)
	require.True(t, session.HasRole("SUPER_ADMIN"))

	// The exchange carried the code and its PKCE verifier.
	require.Equal(t, "code-1", platform.lastForm.Get("code"))
	require.NotEmpty(t, platform.lastForm.Get("code_verifier"))

	// The session survived to disk.
	cached, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, cached)
	require.Equal(t, accessToken, cached.AccessToken)
}

func TestFlow_Login_StateMismatch(t *testing.T) {
	platform := newFakePlatform(t, "unused")
	store := sessions.NewStore(filepath.Join(t.TempDir(), "session"), sessions.WithSecret("test-secret"))

	tampered := func(authURL string) error {
		parsed, err := url.Parse(authURL)
		require.NoError(t, err)
		callback := parsed.Query().Get("redirect_uri") + "?code=code-1&state=forged"
		go func() {
			resp, err := http.Get(callback)
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}

	flow, err := auth.NewFlow(platform.server.URL, "console", nil,
		freeLoopbackAddr(t), store,
		auth.WithBrowserOpener(tampered),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = flow.Login(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "state mismatch")
}

func TestFlow_Logout(t *testing.T) {
	var revoked url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		revoked = r.Form
	}))
	defer server.Close()

	store := sessions.NewStore(filepath.Join(t.TempDir(), "session"), sessions.WithSecret("test-secret"))
	session := &sessions.Session{AccessToken: "tok", RefreshToken: "refresh-1"}
	require.NoError(t, store.Save(session))

	flow, err := auth.NewFlow(server.URL, "console", nil, "127.0.0.1:0", store)
	require.NoError(t, err)

	require.NoError(t, flow.Logout(context.Background(), session, server.URL+"/oauth2/revoke"))
	require.Equal(t, "refresh-1", revoked.Get("token"))
	require.Equal(t, "refresh_token", revoked.Get("token_type_hint"))

	cached, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, cached)
}
