// Package access holds the permission predicates of the catalog. Every check
// fails closed: a zero requester id or an unrecognised role is denied.
package access

import "github.com/tair/catalog-service/internal/product/domain"

// IsOwner reports whether requesterID owns the product.
func IsOwner(p *domain.Product, requesterID uint) bool {
	return p != nil && requesterID != 0 && p.UserID == requesterID
}

// RequireOwner returns a ForbiddenError unless requesterID owns the product.
func RequireOwner(p *domain.Product, requesterID uint) error {
	if !IsOwner(p, requesterID) {
		return domain.NewForbiddenError("only the owner may access this product")
	}
	return nil
}

// HasRole reports whether role is exactly want.
func HasRole(role, want domain.Role) bool {
	return role == want
}

func RequireRole(role, want domain.Role) error {
	if !HasRole(role, want) {
		return domain.NewForbiddenError(want.String() + " role required")
	}
	return nil
}

func RequireAdmin(role domain.Role) error {
	return RequireRole(role, domain.RoleAdmin)
}

// RequireSeller also demands a requester id, since sellers act on their own records.
func RequireSeller(role domain.Role, requesterID uint) error {
	if requesterID == 0 {
		return domain.NewForbiddenError("requester id required")
	}
	return RequireRole(role, domain.RoleSeller)
}

// RequireSellerOwner combines the seller role gate with ownership.
func RequireSellerOwner(p *domain.Product, requesterID uint, role domain.Role) error {
	if err := RequireSeller(role, requesterID); err != nil {
		return err
	}
	return RequireOwner(p, requesterID)
}

// IsReviewAuthor reports whether requesterID wrote the review.
func IsReviewAuthor(r *domain.Review, requesterID uint) bool {
	return r != nil && requesterID != 0 && r.UserID == requesterID
}

func RequireReviewAuthor(r *domain.Review, requesterID uint) error {
	if !IsReviewAuthor(r, requesterID) {
		return domain.NewForbiddenError("only the author may change this review")
	}
	return nil
}
