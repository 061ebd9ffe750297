package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// TokenProvider supplies a valid bearer token for outgoing requests.
// Implementations may refresh behind the scenes; a returned error means
// the request must not be sent.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client is the REST client for the UIDAM platform API. All service
// wrappers (users, clients, accounts, roles, scopes, assistant) are thin
// layers over it. Each call is a single request/response pair; retry is
// the caller's choice.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenProvider
	logger     zerolog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenProvider sets the bearer token source for authenticated calls.
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *Client) {
		c.tokens = tp
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new platform API client for the given base URL.
func NewClient(baseURL string, options ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// BaseURL returns the configured platform base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs a single request and returns the raw response body.
// Responses with status >= 400 are decoded into an *Error carrying the
// backend's code/message plus request metadata, logged, and returned.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, contentType string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "[Client.do] marshal %s %s", method, path)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.do] new request %s %s", method, path)
	}
	if payload != nil {
		if contentType == "" {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	// Correlation ID ties the console's log line to the platform's.
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	if c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "[Client.do] token for %s %s", method, path)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.do] read body %s %s", method, path)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("requestId", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp.StatusCode, method, path, data)
		c.logger.Error().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("code", apiErr.Code).
			Str("message", apiErr.Message).
			Msg("api error")
		return nil, apiErr
	}

	return data, nil
}
