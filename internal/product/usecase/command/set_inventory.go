package command

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

// SetInventoryCommand replaces the stock of a listing.
type SetInventoryCommand struct {
	ProductID   uint
	RequesterID uint
	Stock       int
}

type SetInventoryHandler struct {
	repo domain.ProductRepository
}

func NewSetInventoryHandler(repo domain.ProductRepository) *SetInventoryHandler {
	return &SetInventoryHandler{repo: repo}
}

// Handle checks ownership before touching the record, then lets the
// product derive its status from the new stock.
func (h *SetInventoryHandler) Handle(ctx context.Context, cmd SetInventoryCommand) (*domain.Product, error) {
	if cmd.Stock < 0 {
		return nil, domain.NewInvalidArgumentError("stockQuantity", "must be non-negative")
	}

	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(product, cmd.RequesterID); err != nil {
		return nil, err
	}

	prior := product.Status
	product.SetInventory(cmd.Stock)

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Int("stock", cmd.Stock).
		Str("from", string(prior)).
		Str("to", string(product.Status)).
		Msg("Inventory updated")
	return product, nil
}
