package api

import (
	"context"
	"net/http"
	"net/url"
)

// ContentTypeJSONPatch is the media type for RFC6902 patch requests.
const ContentTypeJSONPatch = "application/json-patch+json"

// Create POSTs payload and unwraps the created entity.
func Create[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	var zero T
	body, err := c.do(ctx, http.MethodPost, path, nil, payload, "")
	if err != nil {
		return zero, err
	}
	return Unwrap[T](body)
}

// Get fetches and unwraps a single entity.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T
	body, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return zero, err
	}
	return Unwrap[T](body)
}

// Update PUTs a full replacement and unwraps the stored entity.
func Update[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	var zero T
	body, err := c.do(ctx, http.MethodPut, path, nil, payload, "")
	if err != nil {
		return zero, err
	}
	return Unwrap[T](body)
}

// Patch sends an RFC6902 operation list and unwraps the patched entity.
// Callers are expected to short-circuit before reaching here when the
// operation list is empty.
func Patch[T any](ctx context.Context, c *Client, path string, operations any) (T, error) {
	var zero T
	body, err := c.do(ctx, http.MethodPatch, path, nil, operations, ContentTypeJSONPatch)
	if err != nil {
		return zero, err
	}
	return Unwrap[T](body)
}

// Delete removes an entity. The response body is discarded.
func Delete(ctx context.Context, c *Client, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "")
	return err
}

// List fetches and unwraps a collection.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	return UnwrapList[T](body)
}

// Search POSTs filter criteria and unwraps the matching collection.
func Search[T any](ctx context.Context, c *Client, path string, criteria any) ([]T, error) {
	body, err := c.do(ctx, http.MethodPost, path, nil, criteria, "")
	if err != nil {
		return nil, err
	}
	return UnwrapList[T](body)
}
