package roles

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
)

// Service wraps the platform's role-management endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a role service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Create validates the form and creates a role.
func (s *Service) Create(ctx context.Context, role *Role) (*Role, error) {
	if err := role.Validate(); err != nil {
		return nil, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}
	created, err := api.Create[Role](ctx, s.client, api.RouteRoles, role)
	if err != nil {
		return nil, errors.Wrap(err, "[roles.Service.Create]")
	}
	return &created, nil
}

// Get fetches a role by name.
func (s *Service) Get(ctx context.Context, name string) (*Role, error) {
	role, err := api.Get[Role](ctx, s.client, api.RouteRoles+"/"+name)
	if err != nil {
		return nil, errors.Wrap(err, "[roles.Service.Get]")
	}
	return &role, nil
}

// Update submits the edit as a JSON-Patch partial update, skipping the
// network call with changed=false when nothing changed.
func (s *Service) Update(ctx context.Context, original, edited *Role) (*Role, bool, error) {
	if err := edited.Validate(); err != nil {
		return nil, false, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}

	ops, err := jsonpatch.DiffRecords(original, edited)
	if err != nil {
		return nil, false, errors.Wrap(err, "[roles.Service.Update] diff")
	}
	if len(ops) == 0 {
		return original, false, nil
	}

	updated, err := api.Patch[Role](ctx, s.client, api.RouteRoles+"/"+original.Name, ops)
	if err != nil {
		// An empty acknowledgment means the patch took; apply the
		// submitted ops to the held original.
		if consoleerrors.Is(err, consoleerrors.ErrNoResult) {
			var patched Role
			if err := jsonpatch.ApplyRecord(original, ops, &patched); err != nil {
				return nil, false, errors.Wrap(err, "[roles.Service.Update] local apply")
			}
			return &patched, true, nil
		}
		return nil, false, errors.Wrap(err, "[roles.Service.Update]")
	}
	return &updated, true, nil
}

// Delete removes a role by name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := api.Delete(ctx, s.client, api.RouteRoles+"/"+name); err != nil {
		return errors.Wrap(err, "[roles.Service.Delete]")
	}
	return nil
}

// List fetches a page of roles.
func (s *Service) List(ctx context.Context, offset, limit int) ([]Role, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	items, err := api.List[Role](ctx, s.client, api.RouteRoles, query)
	if err != nil {
		return nil, errors.Wrap(err, "[roles.Service.List]")
	}
	return items, nil
}
