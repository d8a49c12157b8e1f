package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"campaign_sync/internal/platform"
)

// IDResponse is implemented by platform create responses.
type IDResponse interface {
	PlatformID() string
}

// Create posts payload and maps the answer onto a CreateResult. A rejection
// becomes Success=false; transport failures are returned as errors.
func (c *Client) Create(ctx context.Context, path, idempotencyKey string, payload any, out IDResponse) (platform.CreateResult, error) {
	err := c.Do(ctx, http.MethodPost, path, idempotencyKey, payload, out)
	if rej, ok := AsRejection(err); ok {
		return platform.CreateResult{Success: false, Error: rej.Message}, nil
	}
	if err != nil {
		return platform.CreateResult{}, err
	}

	id := out.PlatformID()
	if id == "" {
		return platform.CreateResult{Success: false, Error: "platform returned no id"}, nil
	}
	return platform.CreateResult{Success: true, PlatformID: id}, nil
}

// Update sends payload with method (PATCH or POST depending on the API).
// idempotencyKey only scopes the entity; the key sent is derived from it and
// the encoded payload, so a later edit is not mistaken for a replay.
func (c *Client) Update(ctx context.Context, method, path, idempotencyKey string, payload any) (platform.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return platform.Result{}, fmt.Errorf("encode request: %w", err)
	}
	err = c.Do(ctx, method, path, ContentKey(idempotencyKey, body), json.RawMessage(body), nil)
	if rej, ok := AsRejection(err); ok {
		return platform.Result{Success: false, Error: rej.Message}, nil
	}
	if err != nil {
		return platform.Result{}, err
	}
	return platform.Result{Success: true}, nil
}

// Delete removes a remote entity. An entity that is already gone counts as
// deleted.
func (c *Client) Delete(ctx context.Context, path, idempotencyKey string) error {
	err := c.Do(ctx, http.MethodDelete, path, idempotencyKey, nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}

// Get decodes a read-only resource into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, "", nil, out)
}
