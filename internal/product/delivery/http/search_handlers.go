package http

import (
	"net/http"

	"github.com/tair/catalog-service/internal/product/usecase/query"
)

// SearchByKeyword handles GET /api/search/products?keyword=
func (h *ProductHandler) SearchByKeyword(w http.ResponseWriter, r *http.Request) {
	views, err := h.queries.SearchByKeyword.Handle(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// SearchMine handles GET /api/search/products/me?keyword=
func (h *ProductHandler) SearchMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.queries.SearchMine.Handle(r.Context(), query.SearchMineQuery{
		RequesterID: RequesterFromContext(r.Context()).ID,
		Keyword:     r.URL.Query().Get("keyword"),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// Autocomplete handles GET /api/search/products/autocomplete?prefix=
// The older keyword parameter is still read when prefix is absent.
func (h *ProductHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = r.URL.Query().Get("keyword")
	}
	names, err := h.queries.Autocomplete.Handle(r.Context(), prefix)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// FilterProducts handles GET /api/search/products/result
func (h *ProductHandler) FilterProducts(w http.ResponseWriter, r *http.Request) {
	q := query.FilterProductsQuery{Status: r.URL.Query().Get("status")}
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

	views, err := h.queries.Filter.Handle(r.Context(), q)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// RecentKeywords handles GET /api/search/recent
func (h *ProductHandler) RecentKeywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := h.queries.RecentKeywords.Handle(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, keywords)
}
