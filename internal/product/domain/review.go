package domain

import (
	"context"
	"time"
)

// DefaultReviewImage is stored when a review is saved without an image.
const DefaultReviewImage = "/reviewImg/noImg.jpg"

// ReviewDateLayout is the display format of review dates.
const ReviewDateLayout = "2006.01.02"

// Review is a buyer's rating of a purchased order item.
type Review struct {
	ID          uint      `json:"reviewId" gorm:"column:review_id;primaryKey"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	ProductID   uint      `json:"productId" gorm:"not null;index"`
	OrderItemID uint      `json:"orderItemId" gorm:"not null;uniqueIndex"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Image       string    `json:"image" gorm:"type:text"`
	Rating      int       `json:"rating" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
}

func (Review) TableName() string {
	return "review"
}

// ReviewRepository defines the contract for review data access.
// Create returns a *ConflictError when the order item already has a review.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	ExistsByOrderItemID(ctx context.Context, orderItemID uint) (bool, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uint) error
	FindByProduct(ctx context.Context, productID uint) ([]Review, error)
	FindByUser(ctx context.Context, userID uint) ([]Review, error)
	FindOrderItemIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

// ReviewAggregate is the live review count and mean rating of a product.
type ReviewAggregate struct {
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// ComputeAggregate returns the count and arithmetic mean of the ratings,
// or a zero average when there are no reviews.
func ComputeAggregate(reviews []Review) ReviewAggregate {
	if len(reviews) == 0 {
		return ReviewAggregate{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return ReviewAggregate{
		ReviewCount:   len(reviews),
		AverageRating: float64(sum) / float64(len(reviews)),
	}
}

// FormatReviewDate renders a timestamp for review lists.
func FormatReviewDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ReviewDateLayout)
}

// ReviewView is an entry of a product's review list.
type ReviewView struct {
	ReviewID    uint   `json:"reviewId"`
	ProductID   uint   `json:"productId"`
	OrderItemID uint   `json:"orderItemId"`
	Rating      int    `json:"rating"`
	Content     string `json:"content"`
	Image       string `json:"image"`
	UserID      uint   `json:"userId"`
	CreatedAt   string `json:"createdAt"`
}

func NewReviewView(r *Review) ReviewView {
	return ReviewView{
		ReviewID:    r.ID,
		ProductID:   r.ProductID,
		OrderItemID: r.OrderItemID,
		Rating:      r.Rating,
		Content:     r.Content,
		Image:       r.Image,
		UserID:      r.UserID,
		CreatedAt:   FormatReviewDate(r.CreatedAt),
	}
}

// UserReviewView is an entry of a user's review list, joined with the
// reviewed product's projection.
type UserReviewView struct {
	ReviewID     uint   `json:"reviewId"`
	ProductID    uint   `json:"productId"`
	OrderItemID  uint   `json:"orderItemId"`
	Rating       int    `json:"rating"`
	Content      string `json:"content"`
	Image        string `json:"image"`
	CreatedAt    string `json:"createdAt"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	ProductPrice int    `json:"productPrice"`
}
