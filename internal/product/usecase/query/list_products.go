package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
)

// ListProductsQuery represents a role-scoped listing
type ListProductsQuery struct {
	RequesterID uint
	Role        domain.Role
	CategoryID  *uint
	Keyword     string
}

// ListProductsHandler scopes the listing by role: admins see everything,
// sellers their own listings and everyone else APPROVED listings.
type ListProductsHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewListProductsHandler(repo domain.ProductRepository, enricher ProductEnricher) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, enricher: enricher}
}

func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.ProductView, error) {
	var (
		products []domain.Product
		err      error
	)
	switch q.Role {
	case domain.RoleAdmin:
		products, err = h.repo.FindAll(ctx)
	case domain.RoleSeller:
		if err := access.RequireSeller(q.Role, q.RequesterID); err != nil {
			return nil, err
		}
		products, err = h.sellerProducts(ctx, q)
	default:
		products, err = h.approvedProducts(ctx, q)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return h.enricher.EnrichAll(ctx, products)
}

func (h *ListProductsHandler) sellerProducts(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	keyword := strings.TrimSpace(q.Keyword)
	switch {
	case q.CategoryID != nil && keyword != "":
		return h.repo.FindByOwnerCategoryAndName(ctx, q.RequesterID, *q.CategoryID, keyword)
	case q.CategoryID != nil:
		return h.repo.FindByOwnerAndCategory(ctx, q.RequesterID, *q.CategoryID)
	case keyword != "":
		return h.repo.FindByOwnerAndName(ctx, q.RequesterID, keyword)
	default:
		return h.repo.FindByOwner(ctx, q.RequesterID)
	}
}

func (h *ListProductsHandler) approvedProducts(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	keyword := strings.TrimSpace(q.Keyword)
	switch {
	case q.CategoryID != nil && keyword != "":
		return h.repo.FindByCategoryNameAndStatus(ctx, *q.CategoryID, keyword, domain.StatusApproved)
	case q.CategoryID != nil:
		return h.repo.FindByCategoryAndStatus(ctx, *q.CategoryID, domain.StatusApproved)
	case keyword != "":
		return h.repo.FindByNameAndStatus(ctx, keyword, domain.StatusApproved)
	default:
		return h.repo.FindByStatus(ctx, domain.StatusApproved)
	}
}

// ProductsByCategoryHandler lists APPROVED listings of one category.
type ProductsByCategoryHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewProductsByCategoryHandler(repo domain.ProductRepository, enricher ProductEnricher) *ProductsByCategoryHandler {
	return &ProductsByCategoryHandler{repo: repo, enricher: enricher}
}

func (h *ProductsByCategoryHandler) Handle(ctx context.Context, categoryID uint) ([]domain.ProductView, error) {
	products, err := h.repo.FindByCategoryAndStatus(ctx, categoryID, domain.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list category %d: %w", categoryID, err)
	}
	return h.enricher.EnrichAll(ctx, products)
}

// PendingProductsHandler lists the approval queue.
type PendingProductsHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewPendingProductsHandler(repo domain.ProductRepository, enricher ProductEnricher) *PendingProductsHandler {
	return &PendingProductsHandler{repo: repo, enricher: enricher}
}

func (h *PendingProductsHandler) Handle(ctx context.Context, role domain.Role) ([]domain.ProductView, error) {
	if err := access.RequireAdmin(role); err != nil {
		return nil, err
	}
	products, err := h.repo.FindByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending products: %w", err)
	}
	return h.enricher.EnrichAll(ctx, products)
}
