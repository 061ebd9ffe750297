package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/sessions"
)

// loginTimeout bounds how long the flow waits for the browser redirect.
const loginTimeout = 5 * time.Minute

// Flow runs the authorization-code + PKCE login against the platform's
// OAuth2 endpoints and turns the outcome into a persisted session.
type Flow struct {
	issuer       string
	clientID     string
	scopes       []string
	callbackAddr string
	store        *sessions.Store
	httpClient   *http.Client
	logger       zerolog.Logger
	openBrowser  func(url string) error
	nowFunc      func() time.Time
}

// FlowOption configures the Flow.
type FlowOption func(*Flow)

// WithFlowHTTPClient sets a custom HTTP client for discovery and exchange.
func WithFlowHTTPClient(httpClient *http.Client) FlowOption {
	return func(f *Flow) {
		f.httpClient = httpClient
	}
}

// WithFlowLogger sets a custom logger.
func WithFlowLogger(logger zerolog.Logger) FlowOption {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithBrowserOpener overrides how the authorization URL is presented
// (primarily for testing; the default launches the system browser).
func WithBrowserOpener(open func(url string) error) FlowOption {
	return func(f *Flow) {
		f.openBrowser = open
	}
}

// WithFlowNowFunc sets the clock (primarily for testing).
func WithFlowNowFunc(now func() time.Time) FlowOption {
	return func(f *Flow) {
		f.nowFunc = now
	}
}

// NewFlow creates a login flow for the given issuer and client.
func NewFlow(issuer, clientID string, scopes []string, callbackAddr string, store *sessions.Store, options ...FlowOption) (*Flow, error) {
	if issuer == "" {
		return nil, errors.New("[NewFlow] issuer is required")
	}
	if clientID == "" {
		return nil, errors.New("[NewFlow] clientID is required")
	}
	if store == nil {
		return nil, errors.New("[NewFlow] store is required")
	}

	f := &Flow{
		issuer:       issuer,
		clientID:     clientID,
		scopes:       scopes,
		callbackAddr: callbackAddr,
		store:        store,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       zerolog.Nop(),
		openBrowser:  launchBrowser,
		nowFunc:      time.Now,
	}
	for _, opt := range options {
		opt(f)
	}
	return f, nil
}

type callbackResult struct {
	code  string
	state string
	err   error
}

// Login discovers the platform's OIDC configuration, sends the operator
// through the authorization-code + PKCE flow, exchanges the returned
// code, verifies the ID token, and persists the resulting session.
func (f *Flow) Login(ctx context.Context) (*sessions.Session, error) {
	ctx = oidc.ClientContext(ctx, f.httpClient)

	provider, err := oidc.NewProvider(ctx, f.issuer)
	if err != nil {
		return nil, errors.Wrap(err, "[Flow.Login] OIDC discovery")
	}

	oauthConfig := &oauth2.Config{
		ClientID:    f.clientID,
		Endpoint:    provider.Endpoint(),
		RedirectURL: fmt.Sprintf("http://%s/callback", f.callbackAddr),
		Scopes:      f.scopes,
	}

	pkce, err := GeneratePKCE()
	if err != nil {
		return nil, errors.Wrap(err, "[Flow.Login] PKCE")
	}
	state, err := GenerateState()
	if err != nil {
		return nil, errors.Wrap(err, "[Flow.Login] state")
	}
	// Only the hash is kept between redirect and callback.
	stateHash := HashState(state)

	listener, err := net.Listen("tcp", f.callbackAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "[Flow.Login] listen on %s", f.callbackAddr)
	}

	results := make(chan callbackResult, 1)
	server := &http.Server{Handler: f.callbackHandler(stateHash, results)}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			results <- callbackResult{err: errors.Wrap(err, "[Flow.Login] callback server")}
		}
	}()
	defer server.Close()

	authURL := oauthConfig.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", pkce.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", pkce.CodeChallengeMethod),
	)
	f.logger.Info().Str("url", authURL).Msg("opening browser for login")
	if err := f.openBrowser(authURL); err != nil {
		f.logger.Warn().Err(err).Msg("could not launch browser, open the URL manually")
	}

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "[Flow.Login] cancelled")
	case <-time.After(loginTimeout):
		return nil, errors.New("[Flow.Login] timed out waiting for login callback")
	}
	if result.err != nil {
		return nil, result.err
	}

	token, err := oauthConfig.Exchange(ctx, result.code,
		oauth2.SetAuthURLParam("code_verifier", pkce.CodeVerifier),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Flow.Login] code exchange")
	}

	session, err := f.buildSession(ctx, provider, token)
	if err != nil {
		return nil, err
	}
	if err := f.store.Save(session); err != nil {
		return nil, errors.Wrap(err, "[Flow.Login] persist session")
	}
	return session, nil
}

func (f *Flow) callbackHandler(stateHash string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}

		query := r.URL.Query()
		if errCode := query.Get("error"); errCode != "" {
			description := query.Get("error_description")
			http.Error(w, "Login failed: "+errCode, http.StatusBadRequest)
			results <- callbackResult{err: errors.Errorf("[Flow.Login] authorization error %s: %s", errCode, description)}
			return
		}
		if HashState(query.Get("state")) != stateHash {
			http.Error(w, "Login failed: state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("[Flow.Login] state mismatch")}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><p>Login complete. You can close this window.</p></body></html>")
		results <- callbackResult{code: query.Get("code"), state: query.Get("state")}
	})
}

// buildSession assembles the session from the token response: profile
// claims from the verified ID token, roles from the access token.
func (f *Flow) buildSession(ctx context.Context, provider *oidc.Provider, token *oauth2.Token) (*sessions.Session, error) {
	session := &sessions.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}

	profile := &sessions.Profile{}
	if accessClaims, err := ParseClaims(token.AccessToken); err == nil {
		profile.ID = accessClaims.Subject
		profile.Roles = accessClaims.Roles
		profile.AccountID = accessClaims.AccountID
	}

	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		verifier := provider.Verifier(&oidc.Config{ClientID: f.clientID})
		idToken, err := verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, errors.Wrap(err, "[Flow.buildSession] verify ID token")
		}
		session.IDToken = rawIDToken

		var idClaims struct {
			Subject   string `json:"sub"`
			Email     string `json:"email"`
			Name      string `json:"name"`
			GivenName string `json:"given_name"`
			Family    string `json:"family_name"`
			UserName  string `json:"preferred_username"`
		}
		if err := idToken.Claims(&idClaims); err != nil {
			return nil, errors.Wrap(err, "[Flow.buildSession] decode ID token claims")
		}
		if idClaims.Subject != "" {
			profile.ID = idClaims.Subject
		}
		profile.Email = idClaims.Email
		profile.UserName = idClaims.UserName
		profile.FirstName = idClaims.GivenName
		profile.LastName = idClaims.Family
	}

	session.User = profile
	return session, nil
}

// Logout revokes the refresh token (best effort) and destroys the
// persisted session.
func (f *Flow) Logout(ctx context.Context, session *sessions.Session, revokeURL string) error {
	if session != nil && session.RefreshToken != "" && revokeURL != "" {
		if err := revokeToken(ctx, f.httpClient, revokeURL, f.clientID, session.RefreshToken); err != nil {
			f.logger.Warn().Err(err).Msg("refresh token revocation failed")
		}
	}
	return f.store.Clear()
}

func launchBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
