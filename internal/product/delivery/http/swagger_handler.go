package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// SearchProducts godoc
// @Summary Search approved products
// @Description Filters APPROVED products; every parameter is optional
// @Tags Products
// @Produce json
// @Param keyword query string false "Name substring, case-insensitive"
// @Param categoryId query int false "Category ID"
// @Param minPrice query int false "Minimum price"
// @Param maxPrice query int false "Maximum price"
// @Param minRating query number false "Minimum average rating"
// @Param sort query string false "price_asc | price_desc | rating_desc | rating_asc"
// @Success 200 {array} domain.ProductView
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *ProductHandler) SearchProductsDoc() {}

// CategoryHierarchy godoc
// @Summary Category hierarchy
// @Description Root categories with their direct children
// @Tags Categories
// @Produce json
// @Success 200 {array} domain.CategoryNode
// @Router /api/products/categories [get]
func (h *ProductHandler) CategoryHierarchyDoc() {}

// ListProducts godoc
// @Summary List products for the requester's role
// @Description ADMIN sees all, SELLER its own listings, anyone else APPROVED listings
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param userId query int false "Requester ID when no bearer token is sent"
// @Param role query string false "ADMIN | SELLER | BUYER"
// @Param categoryId query int false "Category ID"
// @Param keyword query string false "Name substring"
// @Success 200 {array} domain.ProductView
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products/seller [get]
func (h *ProductHandler) ListProductsDoc() {}

// CreateProduct godoc
// @Summary Create a listing
// @Description Stores a new PENDING listing owned by the requesting seller
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Param request body object{image=string,sellerAddressId=int,name=string,categoryId=int,price=int,discountPrice=int,stockQuantity=int,description=string,courierName=string,shippingFee=int} true "Listing"
// @Success 201
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products/seller [post]
func (h *ProductHandler) CreateProductDoc() {}

// GetProductForBuyer godoc
// @Summary Get an approved product
// @Tags Products
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} domain.ProductView
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{productId} [get]
func (h *ProductHandler) GetProductForBuyerDoc() {}

// GetProductForSeller godoc
// @Summary Get an own product in any status
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} domain.ProductView
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{productId}/seller [get]
func (h *ProductHandler) GetProductForSellerDoc() {}

// EditProduct godoc
// @Summary Edit an own listing
// @Description Only present, non-blank fields are applied. Status, owner and stock are not editable.
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Param productId path int true "Product ID"
// @Param request body object true "Fields to change"
// @Success 200
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products/{productId}/seller [put]
func (h *ProductHandler) EditProductDoc() {}

// SetInventory godoc
// @Summary Set stock quantity
// @Description Zero stock marks the listing SOLD_OUT; positive stock restores SOLD_OUT or APPROVED listings to APPROVED
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Param productId path int true "Product ID"
// @Param stock_quantity query int false "Stock"
// @Param request body object{stock_quantity=int} false "Stock, when not given as a query parameter"
// @Success 200
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products/{productId}/seller/inventory [put]
func (h *ProductHandler) SetInventoryDoc() {}

// ApproveProduct godoc
// @Summary Approve a listing
// @Tags Admin
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products/{productId}/approve [post]
func (h *ProductHandler) ApproveProductDoc() {}

// PendingProducts godoc
// @Summary Approval queue
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.ProductView
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products/admin/pending [get]
func (h *ProductHandler) PendingProductsDoc() {}

// ProductsByIDs godoc
// @Summary Bulk cart projection
// @Tags Cart
// @Produce json
// @Param productIds query string true "Comma separated product IDs"
// @Success 200 {array} domain.ProductProjection
// @Router /api/products/cart [get]
func (h *ProductHandler) ProductsByIDsDoc() {}

// CreateReview godoc
// @Summary Write a review
// @Tags Reviews
// @Accept json
// @Param request body object{user_id=int,product_id=int,order_item_id=int,content=string,rating=int,image=string} true "Review"
// @Success 201
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/products/reviews/save [post]
func (h *ProductHandler) CreateReviewDoc() {}

// ReviewsByProduct godoc
// @Summary Reviews of a product
// @Tags Reviews
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} object{reviews=[]domain.ReviewView}
// @Router /api/products/product/{productId}/reviews [get]
func (h *ProductHandler) ReviewsByProductDoc() {}

// SearchByKeyword godoc
// @Summary Keyword search
// @Tags Search
// @Produce json
// @Param keyword query string true "Keyword"
// @Success 200 {array} domain.ProductView
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/search/products [get]
func (h *ProductHandler) SearchByKeywordDoc() {}

// Autocomplete godoc
// @Summary Name suggestions
// @Tags Search
// @Produce json
// @Param prefix query string true "Name prefix"
// @Param keyword query string false "Alias of prefix"
// @Success 200 {array} string
// @Router /api/search/products/autocomplete [get]
func (h *ProductHandler) AutocompleteDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *ProductHandler) HealthCheckDoc() {}
