package command

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/domain"
)

type SubmitInquiryCommand struct {
	ProductID uint
	Fields    Fields
}

// SubmitInquiryHandler forwards a buyer question about a listing to the
// Q&A service. The product id always overrides any caller-supplied one.
type SubmitInquiryHandler struct {
	repo      domain.ProductRepository
	inquiries domain.InquirySubmitter
}

func NewSubmitInquiryHandler(repo domain.ProductRepository, inquiries domain.InquirySubmitter) *SubmitInquiryHandler {
	return &SubmitInquiryHandler{repo: repo, inquiries: inquiries}
}

func (h *SubmitInquiryHandler) Handle(ctx context.Context, cmd SubmitInquiryCommand) error {
	if _, err := h.repo.FindByID(ctx, cmd.ProductID); err != nil {
		return err
	}

	body := make(map[string]interface{}, len(cmd.Fields)+1)
	for k, v := range cmd.Fields {
		body[k] = v
	}
	body["product_id"] = cmd.ProductID

	if err := h.inquiries.SubmitInquiry(ctx, body); err != nil {
		return fmt.Errorf("failed to submit inquiry: %w", err)
	}
	return nil
}
