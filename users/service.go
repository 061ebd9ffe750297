package users

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
)

// Service wraps the platform's user-management endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a user service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Create validates the form and creates a user.
func (s *Service) Create(ctx context.Context, user *User) (*User, error) {
	if err := user.Validate(true); err != nil {
		return nil, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}
	created, err := api.Create[User](ctx, s.client, api.RouteUsers, user)
	if err != nil {
		return nil, errors.Wrap(err, "[users.Service.Create]")
	}
	return &created, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	user, err := api.Get[User](ctx, s.client, api.RouteUsers+"/"+id)
	if err != nil {
		return nil, errors.Wrap(err, "[users.Service.Get]")
	}
	return &user, nil
}

// Update submits the difference between an edited user and its original
// snapshot as a JSON-Patch partial update. When nothing differs after
// normalization, no network call is made and the original is returned
// with changed=false. Passwords never travel through this path.
func (s *Service) Update(ctx context.Context, original, edited *User) (*User, bool, error) {
	if err := edited.Validate(false); err != nil {
		return nil, false, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}

	ops, err := jsonpatch.DiffRecords(scrubPassword(original), scrubPassword(edited))
	if err != nil {
		return nil, false, errors.Wrap(err, "[users.Service.Update] diff")
	}
	if len(ops) == 0 {
		return original, false, nil
	}

	updated, err := api.Patch[User](ctx, s.client, api.RouteUsers+"/"+original.ID, ops)
	if err != nil {
		// An empty acknowledgment means the patch took; apply the
		// submitted ops to the held original.
		if consoleerrors.Is(err, consoleerrors.ErrNoResult) {
			var patched User
			if err := jsonpatch.ApplyRecord(scrubPassword(original), ops, &patched); err != nil {
				return nil, false, errors.Wrap(err, "[users.Service.Update] local apply")
			}
			return &patched, true, nil
		}
		return nil, false, errors.Wrap(err, "[users.Service.Update]")
	}
	return &updated, true, nil
}

// Delete removes a user by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := api.Delete(ctx, s.client, api.RouteUsers+"/"+id); err != nil {
		return errors.Wrap(err, "[users.Service.Delete]")
	}
	return nil
}

// List fetches a page of users.
func (s *Service) List(ctx context.Context, offset, limit int) ([]User, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	items, err := api.List[User](ctx, s.client, api.RouteUsers, query)
	if err != nil {
		return nil, errors.Wrap(err, "[users.Service.List]")
	}
	return items, nil
}

// Filter searches users by criteria.
func (s *Service) Filter(ctx context.Context, criteria FilterCriteria) ([]User, error) {
	items, err := api.Search[User](ctx, s.client, api.RouteUserFilter, criteria)
	if err != nil {
		return nil, errors.Wrap(err, "[users.Service.Filter]")
	}
	return items, nil
}

func scrubPassword(u *User) *User {
	if u == nil || u.Password == "" {
		return u
	}
	scrubbed := *u
	scrubbed.Password = ""
	return &scrubbed
}
