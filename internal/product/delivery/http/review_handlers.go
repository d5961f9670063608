package http

import (
	"net/http"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/usecase/command"
)

// ReviewsByProduct handles GET /api/products/product/{productId}/reviews
func (h *ProductHandler) ReviewsByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	reviews, err := h.queries.ReviewsByProduct.Handle(r.Context(), productID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

// ReviewsByUser handles GET /api/products/{userId}/reviews
func (h *ProductHandler) ReviewsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	reviews, err := h.queries.ReviewsByUser.Handle(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

// CreateReview handles POST /api/products/reviews/save. The body names the
// author; an identified requester may only write as themselves.
func (h *ProductHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	cmd, err := command.CreateReviewCommandFromFields(fields)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if requester := RequesterFromContext(r.Context()); requester.ID != 0 && requester.ID != cmd.UserID {
		respondDomainError(w, r, domain.NewForbiddenError("reviews are written by their author"))
		return
	}
	if _, err := h.commands.CreateReview.Handle(r.Context(), cmd); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondEmpty(w, http.StatusCreated)
}

// UpdateReview handles POST /api/products/reviews/update/save
func (h *ProductHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	cmd, err := command.UpdateReviewCommandFromFields(RequesterFromContext(r.Context()).ID, fields)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if _, err := h.commands.UpdateReview.Handle(r.Context(), cmd); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondEmpty(w, http.StatusOK)
}

// DeleteReview handles DELETE /api/products/{reviewId}/delete
func (h *ProductHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	err = h.commands.DeleteReview.Handle(r.Context(), command.DeleteReviewCommand{
		ReviewID:    reviewID,
		RequesterID: RequesterFromContext(r.Context()).ID,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondEmpty(w, http.StatusOK)
}

// ReviewedOrderItems handles GET /api/products/reviews/orderItemIds/{userId}
func (h *ProductHandler) ReviewedOrderItems(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	ids, err := h.queries.ReviewedOrderItems.Handle(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ids)
}

// ReviewSummary handles GET /api/products/{productId}/reviews/summary
func (h *ProductHandler) ReviewSummary(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	summary, err := h.queries.ReviewSummary.Handle(r.Context(), productID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// ReviewSummaries handles GET /api/products/reviews/summary?productIds=1,2
func (h *ProductHandler) ReviewSummaries(w http.ResponseWriter, r *http.Request) {
	ids, err := idList(r, "productIds")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	summaries, err := h.queries.ReviewSummary.HandleMany(r.Context(), ids)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}
