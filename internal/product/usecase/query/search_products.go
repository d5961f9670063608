package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tair/catalog-service/internal/product/domain"
)

// SearchProductsQuery holds the optional catalog filters. Nil or blank
// fields impose no constraint.
type SearchProductsQuery struct {
	Keyword    string
	CategoryID *uint
	MinPrice   *int
	MaxPrice   *int
	MinRating  *float64
	Sort       domain.SortKey
}

// SearchProductsHandler answers the public catalog search over APPROVED listings.
type SearchProductsHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewSearchProductsHandler(repo domain.ProductRepository, enricher ProductEnricher) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo, enricher: enricher}
}

func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProductsQuery) ([]domain.ProductView, error) {
	approved := domain.StatusApproved
	products, err := h.repo.Search(ctx, domain.SearchCriteria{
		Status:     &approved,
		Keyword:    strings.TrimSpace(q.Keyword),
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		MinRating:  q.MinRating,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	sortProducts(products, q.Sort)
	return h.enricher.EnrichAll(ctx, products)
}

// sortProducts orders in place; ties keep the store's order.
func sortProducts(products []domain.Product, key domain.SortKey) {
	var less func(a, b *domain.Product) bool
	switch key {
	case domain.SortPriceAsc:
		less = func(a, b *domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceDesc:
		less = func(a, b *domain.Product) bool { return a.Price > b.Price }
	case domain.SortRatingAsc:
		less = func(a, b *domain.Product) bool { return a.AverageRating < b.AverageRating }
	case domain.SortRatingDesc:
		less = func(a, b *domain.Product) bool { return a.AverageRating > b.AverageRating }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(&products[i], &products[j]) })
}
