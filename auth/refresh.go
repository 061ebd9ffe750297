package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/sessions"
)

// TokenSource hands out valid access tokens for API calls, refreshing
// behind a single-flight guard: while a refresh is in flight, every
// concurrent caller awaits the same outcome and exactly one network
// refresh happens. A failed refresh is fatal for the session - the
// persisted session is cleared and callers get ErrLoginRequired.
type TokenSource struct {
	store      *sessions.Store
	httpClient *http.Client
	tokenURL   string
	clientID   string
	logger     zerolog.Logger
	nowFunc    func() time.Time

	mu      sync.RWMutex
	session *sessions.Session

	group singleflight.Group
}

// TokenSourceOption configures the TokenSource.
type TokenSourceOption func(*TokenSource)

// WithTokenHTTPClient sets a custom HTTP client for refresh requests.
func WithTokenHTTPClient(httpClient *http.Client) TokenSourceOption {
	return func(ts *TokenSource) {
		ts.httpClient = httpClient
	}
}

// WithTokenLogger sets a custom logger.
func WithTokenLogger(logger zerolog.Logger) TokenSourceOption {
	return func(ts *TokenSource) {
		ts.logger = logger
	}
}

// WithTokenNowFunc sets the clock (primarily for testing).
func WithTokenNowFunc(now func() time.Time) TokenSourceOption {
	return func(ts *TokenSource) {
		ts.nowFunc = now
	}
}

// NewTokenSource bootstraps a token source from the session store,
// loading any cached session.
func NewTokenSource(store *sessions.Store, tokenURL, clientID string, options ...TokenSourceOption) (*TokenSource, error) {
	if store == nil {
		return nil, errors.New("[NewTokenSource] store is required")
	}
	if tokenURL == "" {
		return nil, errors.New("[NewTokenSource] tokenURL is required")
	}

	ts := &TokenSource{
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokenURL:   tokenURL,
		clientID:   clientID,
		logger:     zerolog.Nop(),
		nowFunc:    time.Now,
	}
	for _, opt := range options {
		opt(ts)
	}

	session, err := store.Load()
	if err != nil {
		return nil, errors.Wrap(err, "[NewTokenSource] load session")
	}
	ts.session = session
	return ts, nil
}

// Session returns the current in-memory session, or nil when logged out.
func (ts *TokenSource) Session() *sessions.Session {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.session
}

// SetSession replaces the session after a login and persists it.
func (ts *TokenSource) SetSession(session *sessions.Session) error {
	ts.mu.Lock()
	ts.session = session
	ts.mu.Unlock()
	if session == nil {
		return ts.store.Clear()
	}
	return ts.store.Save(session)
}

// AccessToken returns the current access token if unexpired; otherwise
// it triggers a refresh. Implements api.TokenProvider.
func (ts *TokenSource) AccessToken(ctx context.Context) (string, error) {
	ts.mu.RLock()
	session := ts.session
	ts.mu.RUnlock()

	if session == nil {
		return "", consoleerrors.ErrLoginRequired
	}
	if session.Valid(ts.nowFunc()) {
		return session.AccessToken, nil
	}
	return ts.refresh(ctx)
}

// refresh funnels all callers through one in-flight refresh. The first
// caller performs the network exchange; the rest share its outcome.
func (ts *TokenSource) refresh(ctx context.Context) (string, error) {
	token, err, _ := ts.group.Do("refresh", func() (any, error) {
		// A caller that queued behind a completed refresh finds a
		// fresh token already in place.
		ts.mu.RLock()
		session := ts.session
		ts.mu.RUnlock()

		if session == nil {
			return "", consoleerrors.ErrLoginRequired
		}
		if session.Valid(ts.nowFunc()) {
			return session.AccessToken, nil
		}
		if session.RefreshToken == "" {
			ts.forceLogout()
			return "", consoleerrors.ErrLoginRequired
		}

		tr, err := ts.exchangeRefreshToken(ctx, session.RefreshToken)
		if err != nil {
			ts.logger.Error().Err(err).Msg("token refresh failed, clearing session")
			ts.forceLogout()
			return "", errors.Wrap(consoleerrors.ErrLoginRequired, err.Error())
		}

		updated := *session
		updated.AccessToken = tr.AccessToken
		updated.TokenType = tr.TokenType
		updated.ExpiresAt = ts.nowFunc().Add(time.Duration(tr.ExpiresIn) * time.Second)
		if tr.RefreshToken != "" {
			updated.RefreshToken = tr.RefreshToken
		}
		if tr.IdToken != "" {
			updated.IDToken = tr.IdToken
		}

		ts.mu.Lock()
		ts.session = &updated
		ts.mu.Unlock()

		if err := ts.store.Save(&updated); err != nil {
			ts.logger.Warn().Err(err).Msg("failed to persist refreshed session")
		}
		return updated.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (ts *TokenSource) exchangeRefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	if ts.clientID != "" {
		form.Set("client_id", ts.clientID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "[TokenSource.exchangeRefreshToken] new request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[TokenSource.exchangeRefreshToken] request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "[TokenSource.exchangeRefreshToken] read body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(consoleerrors.ErrRefreshFailed, "status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, errors.Wrap(err, "[TokenSource.exchangeRefreshToken] decode response")
	}
	if tr.AccessToken == "" {
		return nil, errors.Wrap(consoleerrors.ErrRefreshFailed, "response missing access_token")
	}
	return &tr, nil
}

// forceLogout destroys the session in memory and on disk. The next
// command sees ErrLoginRequired and points the operator at `login`.
func (ts *TokenSource) forceLogout() {
	ts.mu.Lock()
	ts.session = nil
	ts.mu.Unlock()
	if err := ts.store.Clear(); err != nil {
		ts.logger.Warn().Err(err).Msg("failed to clear session store")
	}
}
