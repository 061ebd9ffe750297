package clients

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
)

// Service wraps the platform's OAuth2 client-management endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a client-management service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Create validates the form and registers a new OAuth2 client.
func (s *Service) Create(ctx context.Context, c *Client) (*Client, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}
	created, err := api.Create[Client](ctx, s.client, api.RouteOAuth2Client, c)
	if err != nil {
		return nil, errors.Wrap(err, "[clients.Service.Create]")
	}
	return &created, nil
}

// Get fetches an OAuth2 client by its client ID.
func (s *Service) Get(ctx context.Context, clientID string) (*Client, error) {
	c, err := api.Get[Client](ctx, s.client, api.RouteOAuth2Client+"/"+clientID)
	if err != nil {
		return nil, errors.Wrap(err, "[clients.Service.Get]")
	}
	return &c, nil
}

// Update submits the edit as a JSON-Patch partial update. An edit that
// normalizes back to the original produces zero operations and skips
// the network call with changed=false; secrets never travel through
// this path.
func (s *Service) Update(ctx context.Context, original, edited *Client) (*Client, bool, error) {
	if err := edited.Validate(); err != nil {
		return nil, false, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}

	ops, err := jsonpatch.DiffRecords(scrubSecret(original), scrubSecret(edited))
	if err != nil {
		return nil, false, errors.Wrap(err, "[clients.Service.Update] diff")
	}
	if len(ops) == 0 {
		return original, false, nil
	}

	updated, err := api.Patch[Client](ctx, s.client, api.RouteOAuth2Client+"/"+original.ClientID, ops)
	if err != nil {
		// An empty acknowledgment means the patch took; apply the
		// submitted ops to the held original.
		if consoleerrors.Is(err, consoleerrors.ErrNoResult) {
			var patched Client
			if err := jsonpatch.ApplyRecord(scrubSecret(original), ops, &patched); err != nil {
				return nil, false, errors.Wrap(err, "[clients.Service.Update] local apply")
			}
			return &patched, true, nil
		}
		return nil, false, errors.Wrap(err, "[clients.Service.Update]")
	}
	return &updated, true, nil
}

// Delete removes an OAuth2 client registration.
func (s *Service) Delete(ctx context.Context, clientID string) error {
	if err := api.Delete(ctx, s.client, api.RouteOAuth2Client+"/"+clientID); err != nil {
		return errors.Wrap(err, "[clients.Service.Delete]")
	}
	return nil
}

// List fetches a page of registered clients.
func (s *Service) List(ctx context.Context, offset, limit int) ([]Client, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	items, err := api.List[Client](ctx, s.client, api.RouteOAuth2Client, query)
	if err != nil {
		return nil, errors.Wrap(err, "[clients.Service.List]")
	}
	return items, nil
}

func scrubSecret(c *Client) *Client {
	if c == nil || c.ClientSecret == "" {
		return c
	}
	scrubbed := *c
	scrubbed.ClientSecret = ""
	return &scrubbed
}
