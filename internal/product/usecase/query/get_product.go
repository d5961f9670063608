package query

import (
	"context"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
)

// GetProductForBuyerHandler returns a listing only once it is APPROVED.
// Any other status reads as not found.
type GetProductForBuyerHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewGetProductForBuyerHandler(repo domain.ProductRepository, enricher ProductEnricher) *GetProductForBuyerHandler {
	return &GetProductForBuyerHandler{repo: repo, enricher: enricher}
}

func (h *GetProductForBuyerHandler) Handle(ctx context.Context, productID uint) (*domain.ProductView, error) {
	product, err := h.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.StatusApproved {
		return nil, domain.NewNotFoundError("product", productID)
	}
	view, err := h.enricher.Enrich(ctx, product)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

type GetProductForSellerQuery struct {
	ProductID   uint
	RequesterID uint
	Role        domain.Role
}

// GetProductForSellerHandler returns any status, to the owning seller only.
type GetProductForSellerHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewGetProductForSellerHandler(repo domain.ProductRepository, enricher ProductEnricher) *GetProductForSellerHandler {
	return &GetProductForSellerHandler{repo: repo, enricher: enricher}
}

func (h *GetProductForSellerHandler) Handle(ctx context.Context, q GetProductForSellerQuery) (*domain.ProductView, error) {
	if err := access.RequireSeller(q.Role, q.RequesterID); err != nil {
		return nil, err
	}
	product, err := h.repo.FindByID(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSellerOwner(product, q.RequesterID, q.Role); err != nil {
		return nil, err
	}
	view, err := h.enricher.Enrich(ctx, product)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
