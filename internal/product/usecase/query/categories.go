package query

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/domain"
)

type CategoryHierarchyHandler struct {
	categories domain.CategoryRepository
}

func NewCategoryHierarchyHandler(categories domain.CategoryRepository) *CategoryHierarchyHandler {
	return &CategoryHierarchyHandler{categories: categories}
}

// Handle returns the root categories with their direct children.
func (h *CategoryHierarchyHandler) Handle(ctx context.Context) ([]domain.CategoryNode, error) {
	categories, err := h.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return domain.Hierarchy(categories), nil
}
