package http

import (
	"net/http"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/usecase/command"
	"github.com/tair/catalog-service/internal/product/usecase/query"
)

// SearchProducts handles GET /api/products
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := query.SearchProductsQuery{
		Keyword: r.URL.Query().Get("keyword"),
		Sort:    domain.ParseSortKey(r.URL.Query().Get("sort")),
	}
	var err error
	if q.CategoryID, err = optionalUint(r, "categoryId"); err != nil {
		respondDomainError(w, r, err)
		return
	}
	if q.MinPrice, err = optionalInt(r, "minPrice"); err != nil {
		respondDomainError(w, r, err)
		return
	}
	if q.MaxPrice, err = optionalInt(r, "maxPrice"); err != nil {
		respondDomainError(w, r, err)
		return
	}
	if q.MinRating, err = optionalFloat(r, "minRating"); err != nil {
		respondDomainError(w, r, err)
		return
	}

	views, err := h.queries.Search.Handle(r.Context(), q)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// CategoryHierarchy handles GET /api/products/categories
func (h *ProductHandler) CategoryHierarchy(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.queries.CategoryHierarchy.Handle(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nodes)
}

// ProductsByCategory handles GET /api/products/categories/{categoryId}
func (h *ProductHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	views, err := h.queries.ByCategory.Handle(r.Context(), categoryID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// ListProducts handles GET /api/products/seller, scoped by the requester's role.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	requester := RequesterFromContext(r.Context())
	h.list(w, r, requester.ID, requester.Role)
}

// ListAllProducts handles GET /api/products/admin/all
func (h *ProductHandler) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, RequesterFromContext(r.Context()).ID, domain.RoleAdmin)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, requesterID uint, role domain.Role) {
	categoryID, err := optionalUint(r, "categoryId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	views, err := h.queries.List.Handle(r.Context(), query.ListProductsQuery{
		RequesterID: requesterID,
		Role:        role,
		CategoryID:  categoryID,
		Keyword:     r.URL.Query().Get("keyword"),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// PendingProducts handles GET /api/products/admin/pending
func (h *ProductHandler) PendingProducts(w http.ResponseWriter, r *http.Request) {
	views, err := h.queries.Pending.Handle(r.Context(), RequesterFromContext(r.Context()).Role)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// CreateProduct handles POST /api/products/seller
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	requester := RequesterFromContext(r.Context())
	cmd, err := command.CreateProductCommandFromFields(requester.ID, requester.Role, fields)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if _, err := h.commands.CreateProduct.Handle(r.Context(), cmd); err != nil {
		respondDomainError(w, r, err)
		return
	}
	h.RefreshProductCount(r.Context())
	respondEmpty(w, http.StatusCreated)
}

// SellerAddresses handles GET /api/products/seller/addresses
func (h *ProductHandler) SellerAddresses(w http.ResponseWriter, r *http.Request) {
	body, err := h.queries.SellerAddresses.Handle(r.Context(), RequesterFromContext(r.Context()).ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, body)
}

// ProductsByIDs handles GET /api/products/cart?productIds=1,2,3
func (h *ProductHandler) ProductsByIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := idList(r, "productIds")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	items, err := h.queries.ByIDs.Handle(r.Context(), ids)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// CartItem handles GET /api/products/cart/{productId}
func (h *ProductHandler) CartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	item, err := h.queries.CartItem.Handle(r.Context(), productID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// ProductIDsOf handles GET /api/products/user/{userId}/pIdList
func (h *ProductHandler) ProductIDsOf(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	ids, err := h.queries.ProductIDsOf.Handle(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ids)
}

// GetProductForBuyer handles GET /api/products/{productId}
func (h *ProductHandler) GetProductForBuyer(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	view, err := h.queries.DetailForBuyer.Handle(r.Context(), productID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetProductForSeller handles GET /api/products/{productId}/seller
func (h *ProductHandler) GetProductForSeller(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	requester := RequesterFromContext(r.Context())
	view, err := h.queries.DetailForSeller.Handle(r.Context(), query.GetProductForSellerQuery{
		ProductID:   productID,
		RequesterID: requester.ID,
		Role:        requester.Role,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// EditProduct handles PUT /api/products/{productId}/seller
func (h *ProductHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	err = h.commands.EditProduct.Handle(r.Context(), command.EditProductCommand{
		ProductID:   productID,
		RequesterID: RequesterFromContext(r.Context()).ID,
		Fields:      fields,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondEmpty(w, http.StatusOK)
}

// DeleteProduct handles DELETE /api/products/{productId}/seller
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	err = h.commands.DeleteProduct.Handle(r.Context(), command.DeleteProductCommand{
		ProductID:   productID,
		RequesterID: RequesterFromContext(r.Context()).ID,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	h.RefreshProductCount(r.Context())
	respondEmpty(w, http.StatusOK)
}

// GetInventory handles GET /api/products/{productId}/seller/inventory
func (h *ProductHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	stock, err := h.queries.Inventory.Handle(r.Context(), query.GetInventoryQuery{
		ProductID:   productID,
		RequesterID: RequesterFromContext(r.Context()).ID,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stock)
}

// SetInventory handles PUT /api/products/{productId}/seller/inventory.
// stock_quantity comes from the query string or a JSON body.
func (h *ProductHandler) SetInventory(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	fields := command.Fields{}
	if raw, ok := r.URL.Query()["stock_quantity"]; ok {
		fields["stock_quantity"] = raw[0]
	} else if fields, err = decodeFields(r); err != nil {
		respondDomainError(w, r, err)
		return
	}
	if err := fields.Require("stock_quantity"); err != nil {
		respondDomainError(w, r, err)
		return
	}
	stock, err := fields.Int("stock_quantity")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	_, err = h.commands.SetInventory.Handle(r.Context(), command.SetInventoryCommand{
		ProductID:   productID,
		RequesterID: RequesterFromContext(r.Context()).ID,
		Stock:       stock,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondEmpty(w, http.StatusOK)
}

// changeStatus handles POST /api/products/{productId}/{approve|reject|pending}
func (h *ProductHandler) changeStatus(transition command.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathID(r, "productId")
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		requester := RequesterFromContext(r.Context())
		_, err = h.commands.ChangeStatus.Handle(r.Context(), command.ChangeStatusCommand{
			ProductID:  productID,
			ActorID:    requester.ID,
			Role:       requester.Role,
			Transition: transition,
		})
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondEmpty(w, http.StatusOK)
	}
}

// SubmitInquiry handles POST /api/products/{productId}/oneToOnes
func (h *ProductHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	err = h.commands.SubmitInquiry.Handle(r.Context(), command.SubmitInquiryCommand{ProductID: productID, Fields: fields})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondEmpty(w, http.StatusOK)
}

