package command

import (
	"context"

	"github.com/tair/catalog-service/internal/product/domain"
)

type RecordSaleCommand struct {
	ProductID uint
	Quantity  int
}

// RecordSaleHandler bumps the stored sales counter after a purchase.
type RecordSaleHandler struct {
	repo domain.ProductRepository
}

func NewRecordSaleHandler(repo domain.ProductRepository) *RecordSaleHandler {
	return &RecordSaleHandler{repo: repo}
}

func (h *RecordSaleHandler) Handle(ctx context.Context, cmd RecordSaleCommand) error {
	if cmd.ProductID == 0 {
		return domain.NewInvalidArgumentError("productId", "required")
	}
	if cmd.Quantity <= 0 {
		return domain.NewInvalidArgumentError("quantity", "must be positive")
	}
	return h.repo.IncrementSales(ctx, cmd.ProductID, cmd.Quantity)
}
