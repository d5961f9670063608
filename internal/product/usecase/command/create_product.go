package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

// CreateProductCommand represents a seller listing a new product
type CreateProductCommand struct {
	RequesterID     uint
	Role            domain.Role
	CategoryID      uint   `validate:"required"`
	SellerAddressID uint   `validate:"required"`
	Name            string `validate:"required,max=255"`
	Description     string
	Price           int    `validate:"gte=0"`
	DiscountPrice   int    `validate:"gte=0"`
	StockQuantity   int    `validate:"gte=0"`
	Image           string `validate:"required"`
	CourierName     string `validate:"required"`
	ShippingFee     int    `validate:"gte=0"`
}

var createProductKeys = []string{
	"image", "sellerAddressId", "name", "categoryId", "price", "discountPrice",
	"stockQuantity", "description", "courierName", "shippingFee",
}

// CreateProductCommandFromFields coerces a request body. Every listing field
// must be present; numbers may arrive as JSON numbers or numeric strings.
func CreateProductCommandFromFields(requesterID uint, role domain.Role, f Fields) (CreateProductCommand, error) {
	cmd := CreateProductCommand{RequesterID: requesterID, Role: role}
	if err := f.Require(createProductKeys...); err != nil {
		return cmd, err
	}

	var err error
	if cmd.CategoryID, err = f.Uint("categoryId"); err != nil {
		return cmd, err
	}
	if cmd.SellerAddressID, err = f.Uint("sellerAddressId"); err != nil {
		return cmd, err
	}
	if cmd.Price, err = f.Int("price"); err != nil {
		return cmd, err
	}
	if cmd.DiscountPrice, err = f.Int("discountPrice"); err != nil {
		return cmd, err
	}
	if cmd.StockQuantity, err = f.Int("stockQuantity"); err != nil {
		return cmd, err
	}
	if cmd.ShippingFee, err = f.Int("shippingFee"); err != nil {
		return cmd, err
	}
	cmd.Name = f.String("name")
	cmd.Description = f.String("description")
	cmd.Image = f.String("image")
	cmd.CourierName = f.String("courierName")
	return cmd, nil
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle stores the listing as PENDING and unapproved, owned by the requester.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if err := access.RequireSeller(cmd.Role, cmd.RequesterID); err != nil {
		return nil, err
	}
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	product := &domain.Product{
		CategoryID:      cmd.CategoryID,
		UserID:          cmd.RequesterID,
		SellerAddressID: cmd.SellerAddressID,
		Name:            cmd.Name,
		Description:     cmd.Description,
		Price:           cmd.Price,
		DiscountPrice:   cmd.DiscountPrice,
		StockQuantity:   cmd.StockQuantity,
		Image:           cmd.Image,
		CourierName:     cmd.CourierName,
		ShippingFee:     cmd.ShippingFee,
		AddedAt:         time.Now(),
	}
	product.ResetToPending()

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Uint("owner_id", product.UserID).
		Msg("Product created")
	return product, nil
}
