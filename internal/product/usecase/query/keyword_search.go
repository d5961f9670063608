package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

// AutocompleteLimit caps the number of suggested names.
const AutocompleteLimit = 10

// SearchByKeywordHandler searches APPROVED listings by name and records the
// keyword in the recent-search history. History is optional.
type SearchByKeywordHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
	history  domain.KeywordHistory
}

func NewSearchByKeywordHandler(repo domain.ProductRepository, enricher ProductEnricher, history domain.KeywordHistory) *SearchByKeywordHandler {
	return &SearchByKeywordHandler{repo: repo, enricher: enricher, history: history}
}

func (h *SearchByKeywordHandler) Handle(ctx context.Context, keyword string) ([]domain.ProductView, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.NewInvalidArgumentError("keyword", "must not be blank")
	}

	if h.history != nil {
		if err := h.history.Record(ctx, keyword); err != nil {
			logger.Warn(ctx).Err(err).Str("keyword", keyword).Msg("Search keyword not recorded")
		}
	}

	products, err := h.repo.FindByNameAndStatus(ctx, keyword, domain.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return h.enricher.EnrichAll(ctx, products)
}

type SearchMineQuery struct {
	RequesterID uint
	Keyword     string
}

// SearchMineHandler searches the requester's own listings by name.
type SearchMineHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewSearchMineHandler(repo domain.ProductRepository, enricher ProductEnricher) *SearchMineHandler {
	return &SearchMineHandler{repo: repo, enricher: enricher}
}

func (h *SearchMineHandler) Handle(ctx context.Context, q SearchMineQuery) ([]domain.ProductView, error) {
	if q.RequesterID == 0 {
		return nil, domain.NewForbiddenError("requester id required")
	}
	keyword := strings.TrimSpace(q.Keyword)
	if keyword == "" {
		return nil, domain.NewInvalidArgumentError("keyword", "must not be blank")
	}

	products, err := h.repo.FindByOwnerAndName(ctx, q.RequesterID, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search own products: %w", err)
	}
	return h.enricher.EnrichAll(ctx, products)
}

type AutocompleteHandler struct {
	repo domain.ProductRepository
}

func NewAutocompleteHandler(repo domain.ProductRepository) *AutocompleteHandler {
	return &AutocompleteHandler{repo: repo}
}

// Handle suggests up to AutocompleteLimit names starting with prefix.
func (h *AutocompleteHandler) Handle(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, domain.NewInvalidArgumentError("prefix", "must not be blank")
	}
	names, err := h.repo.FindNamesByPrefix(ctx, prefix, AutocompleteLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to autocomplete: %w", err)
	}
	return names, nil
}

// FilterProductsQuery narrows by category, inclusive price range and status.
type FilterProductsQuery struct {
	CategoryID *uint
	MinPrice   *int
	MaxPrice   *int
	Status     string
}

type FilterProductsHandler struct {
	repo     domain.ProductRepository
	enricher ProductEnricher
}

func NewFilterProductsHandler(repo domain.ProductRepository, enricher ProductEnricher) *FilterProductsHandler {
	return &FilterProductsHandler{repo: repo, enricher: enricher}
}

func (h *FilterProductsHandler) Handle(ctx context.Context, q FilterProductsQuery) ([]domain.ProductView, error) {
	status, err := domain.ParseProductStatus(q.Status)
	if err != nil {
		return nil, err
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, domain.NewInvalidArgumentError("minPrice", "exceeds maxPrice")
	}

	products, err := h.repo.Search(ctx, domain.SearchCriteria{
		Status:     &status,
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	return h.enricher.EnrichAll(ctx, products)
}

// RecentKeywordsHandler returns the recent searches, most recent first.
type RecentKeywordsHandler struct {
	history domain.KeywordHistory
}

func NewRecentKeywordsHandler(history domain.KeywordHistory) *RecentKeywordsHandler {
	return &RecentKeywordsHandler{history: history}
}

func (h *RecentKeywordsHandler) Handle(ctx context.Context) ([]string, error) {
	if h.history == nil {
		return []string{}, nil
	}
	keywords, err := h.history.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent keywords: %w", err)
	}
	return keywords, nil
}
