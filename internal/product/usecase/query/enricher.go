package query

import (
	"context"

	"github.com/tair/catalog-service/internal/product/domain"
)

// ProductEnricher turns stored products into response views.
type ProductEnricher interface {
	Enrich(ctx context.Context, p *domain.Product) (domain.ProductView, error)
	EnrichAll(ctx context.Context, products []domain.Product) ([]domain.ProductView, error)
}
