package domain

import "time"

// AddedAtLayout renders the listing date without a time component.
const AddedAtLayout = time.DateOnly

// ProductView is the enriched product returned by list and detail reads.
type ProductView struct {
	ProductID       uint          `json:"productId"`
	CategoryID      uint          `json:"categoryId"`
	UserID          uint          `json:"userId"`
	SellerAddressID uint          `json:"sellerAddressId"`
	Name            string        `json:"name"`
	UserName        string        `json:"userName"`
	Description     string        `json:"description"`
	Price           int           `json:"price"`
	DiscountPrice   int           `json:"discountPrice"`
	StockQuantity   int           `json:"stockQuantity"`
	Image           string        `json:"image"`
	Status          ProductStatus `json:"status"`
	CourierName     string        `json:"courierName"`
	ShippingFee     int           `json:"shippingFee"`
	ReviewCount     int           `json:"reviewCount"`
	SalesCount      int           `json:"salesCount"`
	AverageRating   float64       `json:"averageRating"`
	AddedAt         string        `json:"addedAt"`
	CategoryPath    []string      `json:"categoryPath"`
	Brand           string        `json:"brand"`
	CategoryName    string        `json:"categoryName"`
	BrandName       string        `json:"brandName"`
}

// NewProductView copies the stored fields. Derived fields are left for
// the enrichment step.
func NewProductView(p *Product) ProductView {
	addedAt := ""
	if !p.AddedAt.IsZero() {
		addedAt = p.AddedAt.Format(AddedAtLayout)
	}
	return ProductView{
		ProductID:       p.ID,
		CategoryID:      p.CategoryID,
		UserID:          p.UserID,
		SellerAddressID: p.SellerAddressID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountPrice:   p.DiscountPrice,
		StockQuantity:   p.StockQuantity,
		Image:           p.Image,
		Status:          p.Status,
		CourierName:     p.CourierName,
		ShippingFee:     p.ShippingFee,
		ReviewCount:     p.ReviewCount,
		SalesCount:      p.SalesCount,
		AverageRating:   p.AverageRating,
		AddedAt:         addedAt,
		CategoryPath:    []string{},
	}
}

// ProductProjection is the minimal bulk shape used by cart and order callers.
type ProductProjection struct {
	ProductID     uint   `json:"productId"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	DiscountPrice int    `json:"discountPrice"`
	Image         string `json:"image"`
	ShippingFee   int    `json:"shippingFee"`
}

func NewProductProjection(p *Product) ProductProjection {
	return ProductProjection{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Image:         p.Image,
		ShippingFee:   p.ShippingFee,
	}
}

// CartItem is the single-product projection, which also carries productName.
type CartItem struct {
	ProductProjection
	ProductName string `json:"productName"`
}
