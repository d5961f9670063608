package command

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

type CreateReviewCommand struct {
	UserID      uint   `validate:"required"`
	ProductID   uint   `validate:"required"`
	OrderItemID uint   `validate:"required"`
	Content     string `validate:"required"`
	Image       string
	Rating      int `validate:"min=1,max=5"`
}

// CreateReviewCommandFromFields reads the snake_case review body.
func CreateReviewCommandFromFields(f Fields) (CreateReviewCommand, error) {
	var cmd CreateReviewCommand
	if err := f.Require("user_id", "product_id", "order_item_id", "content", "rating"); err != nil {
		return cmd, err
	}

	var err error
	if cmd.UserID, err = f.Uint("user_id"); err != nil {
		return cmd, err
	}
	if cmd.ProductID, err = f.Uint("product_id"); err != nil {
		return cmd, err
	}
	if cmd.OrderItemID, err = f.Uint("order_item_id"); err != nil {
		return cmd, err
	}
	if cmd.Rating, err = f.Int("rating"); err != nil {
		return cmd, err
	}
	cmd.Content = f.String("content")
	cmd.Image = f.String("image")
	return cmd, nil
}

// CreateReviewHandler stores at most one review per order item.
type CreateReviewHandler struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
	stats    *ReviewStatsWriter
}

func NewCreateReviewHandler(products domain.ProductRepository, reviews domain.ReviewRepository, stats *ReviewStatsWriter) *CreateReviewHandler {
	return &CreateReviewHandler{products: products, reviews: reviews, stats: stats}
}

func (h *CreateReviewHandler) Handle(ctx context.Context, cmd CreateReviewCommand) (*domain.Review, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	exists, err := h.reviews.ExistsByOrderItemID(ctx, cmd.OrderItemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, orderItemConflict(cmd.OrderItemID)
	}
	if _, err := h.products.FindByID(ctx, cmd.ProductID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:      cmd.UserID,
		ProductID:   cmd.ProductID,
		OrderItemID: cmd.OrderItemID,
		Content:     cmd.Content,
		Image:       reviewImage(cmd.Image),
		Rating:      cmd.Rating,
		CreatedAt:   time.Now(),
	}
	if err := h.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	h.stats.Refresh(ctx, review.ProductID)

	logger.Info(ctx).
		Uint("review_id", review.ID).
		Uint("product_id", review.ProductID).
		Uint("order_item_id", review.OrderItemID).
		Msg("Review created")
	return review, nil
}

func reviewImage(image string) string {
	if strings.TrimSpace(image) == "" {
		return domain.DefaultReviewImage
	}
	return image
}

func orderItemConflict(orderItemID uint) error {
	return domain.NewConflictError("review", "order item "+strconv.FormatUint(uint64(orderItemID), 10))
}
