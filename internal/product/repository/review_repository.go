package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/tair/catalog-service/internal/product/domain"
)

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create relies on the unique index on order_item_id; the translated
// duplicate-key error becomes a ConflictError.
func (r *GormReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewConflictError("review", "order item "+strconv.FormatUint(uint64(review.OrderItemID), 10))
	}
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("review", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review %d: %w", id, err)
	}
	return &review, nil
}

func (r *GormReviewRepository) ExistsByOrderItemID(ctx context.Context, orderItemID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("order_item_id = ?", orderItemID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check review for order item %d: %w", orderItemID, err)
	}
	return count > 0, nil
}

func (r *GormReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("review_id = ?", review.ID).
		Updates(map[string]interface{}{"content": review.Content, "image": review.Image, "rating": review.Rating}).Error
	if err != nil {
		return fmt.Errorf("failed to update review %d: %w", review.ID, err)
	}
	return nil
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("review", id)
	}
	return nil
}

func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	return r.find(ctx, "product_id = ?", productID)
}

func (r *GormReviewRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	return r.find(ctx, "user_id = ?", userID)
}

func (r *GormReviewRepository) FindOrderItemIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("user_id = ?", userID).
		Order("review_id").
		Pluck("order_item_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed order items: %w", err)
	}
	return ids, nil
}

func (r *GormReviewRepository) find(ctx context.Context, cond string, arg uint) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("review_id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	return reviews, nil
}

var _ domain.ReviewRepository = (*GormReviewRepository)(nil)
