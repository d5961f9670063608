package query

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
)

// ProductsByIDsHandler serves the bulk projection used by cart and order
// callers. Unknown ids are skipped and no status filter applies.
type ProductsByIDsHandler struct {
	repo domain.ProductRepository
}

func NewProductsByIDsHandler(repo domain.ProductRepository) *ProductsByIDsHandler {
	return &ProductsByIDsHandler{repo: repo}
}

func (h *ProductsByIDsHandler) Handle(ctx context.Context, ids []uint) ([]domain.ProductProjection, error) {
	products, err := h.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products by id: %w", err)
	}
	out := make([]domain.ProductProjection, 0, len(products))
	for i := range products {
		out = append(out, domain.NewProductProjection(&products[i]))
	}
	return out, nil
}

type CartItemHandler struct {
	repo domain.ProductRepository
}

func NewCartItemHandler(repo domain.ProductRepository) *CartItemHandler {
	return &CartItemHandler{repo: repo}
}

func (h *CartItemHandler) Handle(ctx context.Context, productID uint) (*domain.CartItem, error) {
	product, err := h.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &domain.CartItem{
		ProductProjection: domain.NewProductProjection(product),
		ProductName:       product.Name,
	}, nil
}

// ProductIDsOfHandler lists the ids of a seller's listings.
type ProductIDsOfHandler struct {
	repo domain.ProductRepository
}

func NewProductIDsOfHandler(repo domain.ProductRepository) *ProductIDsOfHandler {
	return &ProductIDsOfHandler{repo: repo}
}

func (h *ProductIDsOfHandler) Handle(ctx context.Context, userID uint) ([]uint, error) {
	products, err := h.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of user %d: %w", userID, err)
	}
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

type GetInventoryQuery struct {
	ProductID   uint
	RequesterID uint
}

type GetInventoryHandler struct {
	repo domain.ProductRepository
}

func NewGetInventoryHandler(repo domain.ProductRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

func (h *GetInventoryHandler) Handle(ctx context.Context, q GetInventoryQuery) (int, error) {
	product, err := h.repo.FindByID(ctx, q.ProductID)
	if err != nil {
		return 0, err
	}
	if err := access.RequireOwner(product, q.RequesterID); err != nil {
		return 0, err
	}
	return product.StockQuantity, nil
}
