package command

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
)

type UpdateReviewCommand struct {
	ReviewID    uint `validate:"required"`
	RequesterID uint
	Content     string `validate:"required"`
	Image       string
	Rating      int `validate:"min=1,max=5"`
}

func UpdateReviewCommandFromFields(requesterID uint, f Fields) (UpdateReviewCommand, error) {
	cmd := UpdateReviewCommand{RequesterID: requesterID}
	if err := f.Require("review_id", "content", "rating"); err != nil {
		return cmd, err
	}

	var err error
	if cmd.ReviewID, err = f.Uint("review_id"); err != nil {
		return cmd, err
	}
	if cmd.Rating, err = f.Int("rating"); err != nil {
		return cmd, err
	}
	cmd.Content = f.String("content")
	cmd.Image = f.String("image")
	return cmd, nil
}

// UpdateReviewHandler replaces content, image and rating in place.
type UpdateReviewHandler struct {
	reviews domain.ReviewRepository
	stats   *ReviewStatsWriter
}

func NewUpdateReviewHandler(reviews domain.ReviewRepository, stats *ReviewStatsWriter) *UpdateReviewHandler {
	return &UpdateReviewHandler{reviews: reviews, stats: stats}
}

func (h *UpdateReviewHandler) Handle(ctx context.Context, cmd UpdateReviewCommand) (*domain.Review, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	review, err := h.reviews.FindByID(ctx, cmd.ReviewID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireReviewAuthor(review, cmd.RequesterID); err != nil {
		return nil, err
	}

	review.Content = cmd.Content
	review.Image = reviewImage(cmd.Image)
	review.Rating = cmd.Rating
	if err := h.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	h.stats.Refresh(ctx, review.ProductID)
	return review, nil
}
