package domain

import (
	"context"
	"strings"
	"time"
)

// ProductStatus is the lifecycle state of a listing.
type ProductStatus string

const (
	StatusPending  ProductStatus = "PENDING"
	StatusApproved ProductStatus = "APPROVED"
	StatusRejected ProductStatus = "REJECTED"
	StatusSoldOut  ProductStatus = "SOLD_OUT"
	StatusHidden   ProductStatus = "HIDDEN"
)

// ParseProductStatus accepts any case; blank or unknown values are rejected.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch st := ProductStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected, StatusSoldOut, StatusHidden:
		return st, nil
	}
	return "", NewInvalidArgumentError("status", "unknown status "+s)
}

// Product represents a seller listing
type Product struct {
	ID              uint          `json:"productId" gorm:"column:product_id;primaryKey"`
	CategoryID      uint          `json:"categoryId" gorm:"not null;index"`
	UserID          uint          `json:"userId" gorm:"not null;index"`
	SellerAddressID uint          `json:"sellerAddressId"`
	Name            string        `json:"name" gorm:"not null"`
	Description     string        `json:"description" gorm:"type:text"`
	Price           int           `json:"price" gorm:"not null;check:price >= 0"`
	DiscountPrice   int           `json:"discountPrice" gorm:"not null;default:0"`
	StockQuantity   int           `json:"stockQuantity" gorm:"not null;default:0"`
	Image           string        `json:"image"`
	Status          ProductStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	AddedAt         time.Time     `json:"addedAt"`
	ReviewCount     int           `json:"reviewCount" gorm:"not null;default:0"`
	SalesCount      int           `json:"salesCount" gorm:"not null;default:0"`
	CourierName     string        `json:"courierName"`
	ShippingFee     int           `json:"shippingFee" gorm:"not null;default:0"`
	IsApproved      bool          `json:"isApproved" gorm:"not null;default:false"`
	AverageRating   float64       `json:"averageRating" gorm:"not null;default:0"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "product"
}

// Approve makes the listing visible to buyers.
func (p *Product) Approve() {
	p.Status = StatusApproved
	p.IsApproved = true
}

func (p *Product) Reject() {
	p.Status = StatusRejected
	p.IsApproved = false
}

func (p *Product) ResetToPending() {
	p.Status = StatusPending
	p.IsApproved = false
}

// SetInventory stores the new stock and derives the status from it.
// Only SOLD_OUT and APPROVED listings are promoted back to APPROVED;
// PENDING, REJECTED and HIDDEN keep their status when stock is positive.
func (p *Product) SetInventory(stock int) {
	p.StockQuantity = stock
	switch {
	case stock <= 0:
		p.Status = StatusSoldOut
	case p.Status == StatusSoldOut || p.Status == StatusApproved:
		p.Status = StatusApproved
	}
}

// SortKey orders catalog search results.
type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
	SortRatingAsc  SortKey = "rating_asc"
)

// ParseSortKey maps unknown keys to SortNone.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortRatingAsc:
		return k
	}
	return SortNone
}

// SearchCriteria holds optional filters. Nil or empty fields impose no constraint.
type SearchCriteria struct {
	Status     *ProductStatus
	Keyword    string
	CategoryID *uint
	MinPrice   *int
	MaxPrice   *int
	MinRating  *float64
}

// Matches applies the criteria to a single record. Keyword matching is a
// case-insensitive substring test on the name.
func (c SearchCriteria) Matches(p *Product) bool {
	if c.Status != nil && p.Status != *c.Status {
		return false
	}
	if c.Keyword != "" && !ContainsFold(p.Name, c.Keyword) {
		return false
	}
	if c.CategoryID != nil && p.CategoryID != *c.CategoryID {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.MinRating != nil && p.AverageRating < *c.MinRating {
		return false
	}
	return true
}

// ContainsFold reports whether substr occurs in s ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ProductRepository defines the contract for product data access.
// Lookups by id return a *NotFoundError on a miss. List methods return
// records in the store's natural order (ascending id).
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Product, error)
	// Update writes the editable columns. SalesCount, ReviewCount and
	// AverageRating keep their stored values.
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	FindAll(ctx context.Context) ([]Product, error)
	FindByStatus(ctx context.Context, status ProductStatus) ([]Product, error)
	FindByCategoryAndStatus(ctx context.Context, categoryID uint, status ProductStatus) ([]Product, error)
	FindByNameAndStatus(ctx context.Context, keyword string, status ProductStatus) ([]Product, error)
	FindByCategoryNameAndStatus(ctx context.Context, categoryID uint, keyword string, status ProductStatus) ([]Product, error)

	FindByOwner(ctx context.Context, userID uint) ([]Product, error)
	FindByOwnerAndCategory(ctx context.Context, userID, categoryID uint) ([]Product, error)
	FindByOwnerAndName(ctx context.Context, userID uint, keyword string) ([]Product, error)
	FindByOwnerCategoryAndName(ctx context.Context, userID, categoryID uint, keyword string) ([]Product, error)

	Search(ctx context.Context, criteria SearchCriteria) ([]Product, error)
	FindNamesByPrefix(ctx context.Context, prefix string, limit int) ([]string, error)

	IncrementSales(ctx context.Context, id uint, quantity int) error
	UpdateReviewStats(ctx context.Context, id uint, count int, average float64) error
}
