package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/usecase/command"
	"github.com/tair/catalog-service/internal/product/usecase/query"
	"github.com/tair/catalog-service/pkg/logger"
)

// Commands groups the mutation handlers served over HTTP.
type Commands struct {
	CreateProduct *command.CreateProductHandler
	EditProduct   *command.EditProductHandler
	DeleteProduct *command.DeleteProductHandler
	SetInventory  *command.SetInventoryHandler
	ChangeStatus  *command.ChangeStatusHandler
	SubmitInquiry *command.SubmitInquiryHandler
	CreateReview  *command.CreateReviewHandler
	UpdateReview  *command.UpdateReviewHandler
	DeleteReview  *command.DeleteReviewHandler
}

// Queries groups the read handlers served over HTTP.
type Queries struct {
	Search             *query.SearchProductsHandler
	List               *query.ListProductsHandler
	ByCategory         *query.ProductsByCategoryHandler
	Pending            *query.PendingProductsHandler
	DetailForBuyer     *query.GetProductForBuyerHandler
	DetailForSeller    *query.GetProductForSellerHandler
	ByIDs              *query.ProductsByIDsHandler
	CartItem           *query.CartItemHandler
	ProductIDsOf       *query.ProductIDsOfHandler
	Inventory          *query.GetInventoryHandler
	CategoryHierarchy  *query.CategoryHierarchyHandler
	SearchByKeyword    *query.SearchByKeywordHandler
	SearchMine         *query.SearchMineHandler
	Autocomplete       *query.AutocompleteHandler
	Filter             *query.FilterProductsHandler
	RecentKeywords     *query.RecentKeywordsHandler
	ReviewsByProduct   *query.ReviewsByProductHandler
	ReviewsByUser      *query.ReviewsByUserHandler
	ReviewedOrderItems *query.ReviewedOrderItemsHandler
	ReviewSummary      *query.ReviewSummaryHandler
	SellerAddresses    *query.SellerAddressesHandler
}

// ProductHandler handles HTTP requests for the catalog using CQRS pattern
type ProductHandler struct {
	commands Commands
	queries  Queries
	repo     domain.ProductRepository
	metrics  *Metrics
}

func NewProductHandler(commands Commands, queries Queries, repo domain.ProductRepository, metrics *Metrics) *ProductHandler {
	return &ProductHandler{commands: commands, queries: queries, repo: repo, metrics: metrics}
}

// RegisterRoutes mounts every catalog route. Numeric path variables are
// constrained so literal segments never collide with ids.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	const id = "{productId:[0-9]+}"

	h.handle(router, "GET", "/api/products", h.SearchProducts)
	h.handle(router, "GET", "/api/products/categories", h.CategoryHierarchy)
	h.handle(router, "GET", "/api/products/categories/{categoryId:[0-9]+}", h.ProductsByCategory)

	h.handle(router, "GET", "/api/products/seller", h.ListProducts)
	h.handle(router, "POST", "/api/products/seller", h.CreateProduct)
	h.handle(router, "GET", "/api/products/seller/addresses", h.SellerAddresses)

	h.handle(router, "GET", "/api/products/admin/all", AdminOnly(h.ListAllProducts))
	h.handle(router, "GET", "/api/products/admin/pending", AdminOnly(h.PendingProducts))

	h.handle(router, "GET", "/api/products/cart", h.ProductsByIDs)
	h.handle(router, "GET", "/api/products/cart/"+id, h.CartItem)
	h.handle(router, "GET", "/api/products/user/{userId:[0-9]+}/pIdList", h.ProductIDsOf)

	h.handle(router, "GET", "/api/products/reviews/orderItemIds/{userId:[0-9]+}", h.ReviewedOrderItems)
	h.handle(router, "GET", "/api/products/reviews/summary", h.ReviewSummaries)
	h.handle(router, "POST", "/api/products/reviews/save", h.CreateReview)
	h.handle(router, "POST", "/api/products/reviews/update/save", h.UpdateReview)
	h.handle(router, "GET", "/api/products/product/"+id+"/reviews", h.ReviewsByProduct)

	h.handle(router, "GET", "/api/products/"+id, h.GetProductForBuyer)
	h.handle(router, "GET", "/api/products/"+id+"/seller", h.GetProductForSeller)
	h.handle(router, "PUT", "/api/products/"+id+"/seller", h.EditProduct)
	h.handle(router, "DELETE", "/api/products/"+id+"/seller", h.DeleteProduct)
	h.handle(router, "GET", "/api/products/"+id+"/seller/inventory", h.GetInventory)
	h.handle(router, "PUT", "/api/products/"+id+"/seller/inventory", h.SetInventory)
	h.handle(router, "POST", "/api/products/"+id+"/approve", h.changeStatus(command.TransitionApprove))
	h.handle(router, "POST", "/api/products/"+id+"/reject", h.changeStatus(command.TransitionReject))
	h.handle(router, "POST", "/api/products/"+id+"/pending", h.changeStatus(command.TransitionPending))
	h.handle(router, "POST", "/api/products/"+id+"/oneToOnes", h.SubmitInquiry)
	h.handle(router, "GET", "/api/products/"+id+"/reviews/summary", h.ReviewSummary)
	h.handle(router, "GET", "/api/products/{userId:[0-9]+}/reviews", h.ReviewsByUser)
	h.handle(router, "DELETE", "/api/products/{reviewId:[0-9]+}/delete", h.DeleteReview)

	h.handle(router, "GET", "/api/search/products", h.SearchByKeyword)
	h.handle(router, "GET", "/api/search/products/me", h.SearchMine)
	h.handle(router, "GET", "/api/search/products/autocomplete", h.Autocomplete)
	h.handle(router, "GET", "/api/search/products/result", h.FilterProducts)
	h.handle(router, "GET", "/api/search/recent", h.RecentKeywords)
}

func (h *ProductHandler) handle(router *mux.Router, method, path string, fn http.HandlerFunc) {
	router.HandleFunc(path, h.metrics.instrument(path, fn)).Methods(method)
}

// RefreshProductCount updates the catalog size gauge.
func (h *ProductHandler) RefreshProductCount(ctx context.Context) {
	count, err := h.repo.Count(ctx)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to count products")
		return
	}
	h.metrics.setTotalProducts(count)
}
