package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tair/catalog-service/internal/product/domain"
)

// SellerAddressesHandler passes the delivery service's address list through.
type SellerAddressesHandler struct {
	addresses domain.SellerAddressLister
}

func NewSellerAddressesHandler(addresses domain.SellerAddressLister) *SellerAddressesHandler {
	return &SellerAddressesHandler{addresses: addresses}
}

func (h *SellerAddressesHandler) Handle(ctx context.Context, userID uint) (json.RawMessage, error) {
	if userID == 0 {
		return nil, domain.NewForbiddenError("requester id required")
	}
	body, err := h.addresses.ListSellerAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller addresses: %w", err)
	}
	return body, nil
}
