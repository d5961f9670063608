package query

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/domain"
)

// ReviewsByProductHandler lists a product's reviews with display dates.
type ReviewsByProductHandler struct {
	reviews domain.ReviewRepository
}

func NewReviewsByProductHandler(reviews domain.ReviewRepository) *ReviewsByProductHandler {
	return &ReviewsByProductHandler{reviews: reviews}
}

func (h *ReviewsByProductHandler) Handle(ctx context.Context, productID uint) ([]domain.ReviewView, error) {
	reviews, err := h.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of product %d: %w", productID, err)
	}
	out := make([]domain.ReviewView, 0, len(reviews))
	for i := range reviews {
		out = append(out, domain.NewReviewView(&reviews[i]))
	}
	return out, nil
}

// ReviewsByUserHandler lists a user's reviews joined with the reviewed
// product's projection. A deleted product leaves the product fields empty.
type ReviewsByUserHandler struct {
	reviews  domain.ReviewRepository
	products domain.ProductRepository
}

func NewReviewsByUserHandler(reviews domain.ReviewRepository, products domain.ProductRepository) *ReviewsByUserHandler {
	return &ReviewsByUserHandler{reviews: reviews, products: products}
}

func (h *ReviewsByUserHandler) Handle(ctx context.Context, userID uint) ([]domain.UserReviewView, error) {
	reviews, err := h.reviews.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of user %d: %w", userID, err)
	}

	ids := make([]uint, 0, len(reviews))
	seen := make(map[uint]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.ProductID]; !ok {
			seen[r.ProductID] = struct{}{}
			ids = append(ids, r.ProductID)
		}
	}
	products, err := h.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewed products: %w", err)
	}
	byID := make(map[uint]domain.ProductProjection, len(products))
	for i := range products {
		byID[products[i].ID] = domain.NewProductProjection(&products[i])
	}

	out := make([]domain.UserReviewView, 0, len(reviews))
	for _, r := range reviews {
		p := byID[r.ProductID]
		out = append(out, domain.UserReviewView{
			ReviewID:     r.ID,
			ProductID:    r.ProductID,
			OrderItemID:  r.OrderItemID,
			Rating:       r.Rating,
			Content:      r.Content,
			Image:        r.Image,
			CreatedAt:    domain.FormatReviewDate(r.CreatedAt),
			ProductName:  p.Name,
			ProductImage: p.Image,
			ProductPrice: p.Price,
		})
	}
	return out, nil
}

type ReviewedOrderItemsHandler struct {
	reviews domain.ReviewRepository
}

func NewReviewedOrderItemsHandler(reviews domain.ReviewRepository) *ReviewedOrderItemsHandler {
	return &ReviewedOrderItemsHandler{reviews: reviews}
}

func (h *ReviewedOrderItemsHandler) Handle(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := h.reviews.FindOrderItemIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed order items: %w", err)
	}
	return ids, nil
}

// ReviewSummaryHandler computes the live aggregate of one or more products.
type ReviewSummaryHandler struct {
	reviews domain.ReviewRepository
}

func NewReviewSummaryHandler(reviews domain.ReviewRepository) *ReviewSummaryHandler {
	return &ReviewSummaryHandler{reviews: reviews}
}

func (h *ReviewSummaryHandler) Handle(ctx context.Context, productID uint) (domain.ReviewAggregate, error) {
	reviews, err := h.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return domain.ReviewAggregate{}, fmt.Errorf("failed to summarize reviews of product %d: %w", productID, err)
	}
	return domain.ComputeAggregate(reviews), nil
}

func (h *ReviewSummaryHandler) HandleMany(ctx context.Context, productIDs []uint) (map[uint]domain.ReviewAggregate, error) {
	out := make(map[uint]domain.ReviewAggregate, len(productIDs))
	for _, id := range productIDs {
		if _, done := out[id]; done {
			continue
		}
		agg, err := h.Handle(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = agg
	}
	return out, nil
}
