package command

import (
	"context"
	"fmt"

	"github.com/tair/catalog-service/internal/product/access"
	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

// Transition is an admin decision on a listing.
type Transition string

const (
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
	TransitionPending Transition = "pending"
)

type ChangeStatusCommand struct {
	ProductID  uint
	ActorID    uint
	Role       domain.Role
	Transition Transition
}

// ChangeStatusHandler applies approve, reject and reset-to-pending.
// The result does not depend on the prior status.
type ChangeStatusHandler struct {
	repo domain.ProductRepository
}

func NewChangeStatusHandler(repo domain.ProductRepository) *ChangeStatusHandler {
	return &ChangeStatusHandler{repo: repo}
}

func (h *ChangeStatusHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*domain.Product, error) {
	if err := access.RequireAdmin(cmd.Role); err != nil {
		return nil, err
	}

	var apply func(*domain.Product)
	switch cmd.Transition {
	case TransitionApprove:
		apply = (*domain.Product).Approve
	case TransitionReject:
		apply = (*domain.Product).Reject
	case TransitionPending:
		apply = (*domain.Product).ResetToPending
	default:
		return nil, domain.NewInvalidArgumentError("transition", string(cmd.Transition))
	}

	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	apply(product)

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to %s product: %w", cmd.Transition, err)
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Uint("actor_id", cmd.ActorID).
		Str("status", string(product.Status)).
		Msg("Product status changed")
	return product, nil
}
