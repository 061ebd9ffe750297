package scopes

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
)

// Service wraps the platform's scope-management endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a scope service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Create validates the form and creates a scope.
func (s *Service) Create(ctx context.Context, scope *Scope) (*Scope, error) {
	if err := scope.Validate(); err != nil {
		return nil, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}
	created, err := api.Create[Scope](ctx, s.client, api.RouteScopes, scope)
	if err != nil {
		return nil, errors.Wrap(err, "[scopes.Service.Create]")
	}
	return &created, nil
}

// Get fetches a scope by name.
func (s *Service) Get(ctx context.Context, name string) (*Scope, error) {
	scope, err := api.Get[Scope](ctx, s.client, api.RouteScopes+"/"+name)
	if err != nil {
		return nil, errors.Wrap(err, "[scopes.Service.Get]")
	}
	return &scope, nil
}

// Update submits the edit as a JSON-Patch partial update, skipping the
// network call with changed=false when nothing changed. Predefined
// scopes cannot be edited.
func (s *Service) Update(ctx context.Context, original, edited *Scope) (*Scope, bool, error) {
	if original.Predefined {
		return nil, false, errors.Wrap(consoleerrors.ErrInvalidForm, "predefined scopes cannot be modified")
	}
	if err := edited.Validate(); err != nil {
		return nil, false, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}

	ops, err := jsonpatch.DiffRecords(original, edited)
	if err != nil {
		return nil, false, errors.Wrap(err, "[scopes.Service.Update] diff")
	}
	if len(ops) == 0 {
		return original, false, nil
	}

	updated, err := api.Patch[Scope](ctx, s.client, api.RouteScopes+"/"+original.Name, ops)
	if err != nil {
		// An empty acknowledgment means the patch took; apply the
		// submitted ops to the held original.
		if consoleerrors.Is(err, consoleerrors.ErrNoResult) {
			var patched Scope
			if err := jsonpatch.ApplyRecord(original, ops, &patched); err != nil {
				return nil, false, errors.Wrap(err, "[scopes.Service.Update] local apply")
			}
			return &patched, true, nil
		}
		return nil, false, errors.Wrap(err, "[scopes.Service.Update]")
	}
	return &updated, true, nil
}

// Delete removes a scope by name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := api.Delete(ctx, s.client, api.RouteScopes+"/"+name); err != nil {
		return errors.Wrap(err, "[scopes.Service.Delete]")
	}
	return nil
}

// List fetches a page of scopes.
func (s *Service) List(ctx context.Context, offset, limit int) ([]Scope, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	items, err := api.List[Scope](ctx, s.client, api.RouteScopes, query)
	if err != nil {
		return nil, errors.Wrap(err, "[scopes.Service.List]")
	}
	return items, nil
}
