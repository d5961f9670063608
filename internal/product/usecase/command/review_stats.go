package command

import (
	"context"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

// ReviewStatsWriter keeps the product's stored review counters in step with
// its reviews. Reads still recompute the aggregate, so a failed refresh is
// logged and not returned.
type ReviewStatsWriter struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
}

func NewReviewStatsWriter(products domain.ProductRepository, reviews domain.ReviewRepository) *ReviewStatsWriter {
	return &ReviewStatsWriter{products: products, reviews: reviews}
}

func (w *ReviewStatsWriter) Refresh(ctx context.Context, productID uint) {
	reviews, err := w.reviews.FindByProduct(ctx, productID)
	if err == nil {
		agg := domain.ComputeAggregate(reviews)
		err = w.products.UpdateReviewStats(ctx, productID, agg.ReviewCount, agg.AverageRating)
	}
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("product_id", productID).
			Msg("Stored review counters not refreshed")
	}
}
