package accounts

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
)

// Service wraps the platform's account-management endpoints.
type Service struct {
	client *api.Client
}

// NewService creates an account service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Create validates the form and creates an account.
func (s *Service) Create(ctx context.Context, account *Account) (*Account, error) {
	if err := account.Validate(); err != nil {
		return nil, errors.Wrap(consoleerrors.ErrInvalidForm, err.Error())
	}
	created, err := api.Create[Account](ctx, s.client, api.RouteAccounts, account)
	if err != nil {
		return nil, errors.Wrap(err, "[accounts.Service.Create]")
	}
	return &created, nil
}

// Get fetches an account by ID.
func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	account, err := api.Get[Account](ctx, s.client, api.RouteAccounts+"/"+id)
	if err != nil {
		return nil, errors.Wrap(err, "[accounts.Service.Get]")
	}
	return &account, nil
}

// Delete removes an account by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := api.Delete(ctx, s.client, api.RouteAccounts+"/"+id); err != nil {
		return errors.Wrap(err, "[accounts.Service.Delete]")
	}
	return nil
}

// List fetches a page of accounts.
func (s *Service) List(ctx context.Context, offset, limit int) ([]Account, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	items, err := api.List[Account](ctx, s.client, api.RouteAccounts, query)
	if err != nil {
		return nil, errors.Wrap(err, "[accounts.Service.List]")
	}
	return items, nil
}

// GetRoles fetches a user's current role assignment within an account.
func (s *Service) GetRoles(ctx context.Context, accountID, userID string) (*RoleMapping, error) {
	path := api.RouteAccounts + "/" + accountID + "/users/" + userID + "/roles"
	mapping, err := api.Get[RoleMapping](ctx, s.client, path)
	if err != nil {
		return nil, errors.Wrap(err, "[accounts.Service.GetRoles]")
	}
	mapping.Selected = true
	return &mapping, nil
}

// UpdateRoles submits a user's account-role changes as per-role
// add/remove operations. No difference means no network call and
// changed=false.
func (s *Service) UpdateRoles(ctx context.Context, original, edited *RoleMapping) (*RoleMapping, bool, error) {
	if original == nil {
		return nil, false, errors.New("[accounts.Service.UpdateRoles] original mapping is required")
	}

	ops := MappingPatch(original, edited)
	if len(ops) == 0 {
		return original, false, nil
	}

	path := api.RouteAccounts + "/" + original.AccountID + "/users/" + original.UserID + "/roles"
	updated, err := api.Patch[RoleMapping](ctx, s.client, path, ops)
	if err != nil {
		// An empty acknowledgment means the patch took; apply the
		// submitted ops to the held original.
		if consoleerrors.Is(err, consoleerrors.ErrNoResult) {
			var patched RoleMapping
			if err := jsonpatch.ApplyRecord(original, ops, &patched); err != nil {
				return nil, false, errors.Wrap(err, "[accounts.Service.UpdateRoles] local apply")
			}
			patched.Selected = edited != nil && edited.Selected
			return &patched, true, nil
		}
		return nil, false, errors.Wrap(err, "[accounts.Service.UpdateRoles]")
	}
	return &updated, true, nil
}
