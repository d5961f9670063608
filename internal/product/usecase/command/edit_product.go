package command

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
)

// EditProductCommand merges the present, non-blank fields into a listing.
// Status, owner and stock are not editable here.
type EditProductCommand struct {
	ProductID   uint
	RequesterID uint
	Fields      Fields
}

type EditProductHandler struct {
	repo domain.ProductRepository
}

func NewEditProductHandler(repo domain.ProductRepository) *EditProductHandler {
	return &EditProductHandler{repo: repo}
}

func (h *EditProductHandler) Handle(ctx context.Context, cmd EditProductCommand) error {
	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if err := access.RequireOwner(product, cmd.RequesterID); err != nil {
		return err
	}
	if err := mergeProductFields(product, cmd.Fields); err != nil {
		return err
	}

	if err := h.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to edit product: %w", err)
	}
	return nil
}

func mergeProductFields(p *domain.Product, f Fields) error {
	strFields := map[string]*string{
		"name":        &p.Name,
		"description": &p.Description,
		"image":       &p.Image,
		"courierName": &p.CourierName,
	}
	for key, dst := range strFields {
		if f.Present(key) {
			*dst = f.String(key)
		}
	}

	intFields := map[string]*int{
		"price":         &p.Price,
		"discountPrice": &p.DiscountPrice,
		"shippingFee":   &p.ShippingFee,
	}
	for key, dst := range intFields {
		if !f.Present(key) {
			continue
		}
		v, err := f.Int(key)
		if err != nil {
			return err
		}
		if v < 0 {
			return domain.NewInvalidArgumentError(key, "must be non-negative")
		}
		*dst = v
	}

	idFields := map[string]*uint{
		"categoryId":      &p.CategoryID,
		"sellerAddressId": &p.SellerAddressID,
	}
	for key, dst := range idFields {
		if !f.Present(key) {
			continue
		}
		v, err := f.Uint(key)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
