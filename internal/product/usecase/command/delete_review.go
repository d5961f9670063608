package command

import (
	"context"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
)

type DeleteReviewCommand struct {
	ReviewID    uint
	RequesterID uint
}

type DeleteReviewHandler struct {
	reviews domain.ReviewRepository
	stats   *ReviewStatsWriter
}

func NewDeleteReviewHandler(reviews domain.ReviewRepository, stats *ReviewStatsWriter) *DeleteReviewHandler {
	return &DeleteReviewHandler{reviews: reviews, stats: stats}
}

func (h *DeleteReviewHandler) Handle(ctx context.Context, cmd DeleteReviewCommand) error {
	review, err := h.reviews.FindByID(ctx, cmd.ReviewID)
	if err != nil {
		return err
	}
	if err := access.RequireReviewAuthor(review, cmd.RequesterID); err != nil {
		return err
	}

	if err := h.reviews.Delete(ctx, cmd.ReviewID); err != nil {
		return err
	}
	h.stats.Refresh(ctx, review.ProductID)
	return nil
}
