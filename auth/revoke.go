package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// revokeToken posts an RFC 7009 revocation request for a refresh token.
func revokeToken(ctx context.Context, httpClient *http.Client, revokeURL, clientID, refreshToken string) error {
	form := url.Values{}
	form.Set("token", refreshToken)
	form.Set("token_type_hint", "refresh_token")
	if clientID != "" {
		form.Set("client_id", clientID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "[revokeToken] new request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "[revokeToken] request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errors.Errorf("[revokeToken] status %d", resp.StatusCode)
	}
	return nil
}
