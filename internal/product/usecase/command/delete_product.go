package command

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

type DeleteProductCommand struct {
	ProductID   uint
	RequesterID uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle removes the listing if the requester owns it.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if err := access.RequireOwner(product, cmd.RequesterID); err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, cmd.ProductID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info(ctx).Uint("product_id", cmd.ProductID).Msg("Product deleted")
	return nil
}
