package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tair/catalog-service/internal/config"
	"github.com/tair/catalog-service/internal/product/domain"
)

type DeliveryClient struct {
	remote *RemoteClient
}

func NewDeliveryClient(remote *RemoteClient) *DeliveryClient {
	return &DeliveryClient{remote: remote}
}

// ListSellerAddresses returns the delivery service's answer unparsed.
func (c *DeliveryClient) ListSellerAddresses(ctx context.Context, userID uint) (json.RawMessage, error) {
	body, err := c.remote.Do(ctx, config.EndpointDelivery, http.MethodGet, fmt.Sprintf("/delivery/seller/all?userId=%d", userID), nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("delivery service returned invalid JSON")
	}
	return json.RawMessage(body), nil
}

var _ domain.SellerAddressLister = (*DeliveryClient)(nil)
