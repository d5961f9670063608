package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tair/catalog-service/internal/config"
	"github.com/tair/catalog-service/internal/product/domain"
)

// UserClient resolves seller and buyer display names.
type UserClient struct {
	remote *RemoteClient
}

func NewUserClient(remote *RemoteClient) *UserClient {
	return &UserClient{remote: remote}
}

func (c *UserClient) LookupIdentity(ctx context.Context, userID uint) (*domain.Identity, error) {
	body, err := c.remote.Do(ctx, config.EndpointUser, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	var identity domain.Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode user %d: %w", userID, err)
	}
	return &identity, nil
}

var _ domain.IdentityLookup = (*UserClient)(nil)
