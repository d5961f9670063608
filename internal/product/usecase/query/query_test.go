package query

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/enrichment"
	"github.com/tair/catalog-service/internal/product/repository"
	"github.com/tair/catalog-service/internal/product/usecase/command"
)

type stubAddresses struct {
	body json.RawMessage
	err  error
}

func (s stubAddresses) ListSellerAddresses(context.Context, uint) (json.RawMessage, error) {
	return s.body, s.err
}

func parent(id uint) *uint { return &id }
func ptr[T any](v T) *T    { return &v }

type QuerySuite struct {
	suite.Suite
	ctx        context.Context
	products   *repository.MemoryProductRepository
	categories *repository.MemoryCategoryRepository
	reviews    *repository.MemoryReviewRepository
	enricher   *enrichment.Enricher
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(QuerySuite))
}

func (s *QuerySuite) SetupTest() {
	s.ctx = context.Background()
	s.products = repository.NewMemoryProductRepository()
	s.categories = repository.NewMemoryCategoryRepository(
		domain.Category{ID: 1, Name: "Home"},
		domain.Category{ID: 2, Name: "Lighting", ParentID: parent(1)},
		domain.Category{ID: 3, Name: "Books"},
	)
	s.reviews = repository.NewMemoryReviewRepository()
	s.enricher = enrichment.NewEnricher(s.categories, s.reviews, nil, enrichment.DefaultConfig(), nil)

	s.seed(domain.Product{Name: "Desk Lamp", CategoryID: 2, UserID: 7, Price: 300, AverageRating: 4.5, Status: domain.StatusApproved})
	s.seed(domain.Product{Name: "Floor Lamp", CategoryID: 2, UserID: 7, Price: 100, AverageRating: 3.0, Status: domain.StatusApproved})
	s.seed(domain.Product{Name: "Lamp Oil", CategoryID: 2, UserID: 8, Price: 100, AverageRating: 5.0, Status: domain.StatusApproved})
	s.seed(domain.Product{Name: "Go Book", CategoryID: 3, UserID: 8, Price: 200, AverageRating: 4.5, Status: domain.StatusApproved})
	s.seed(domain.Product{Name: "Draft Lamp", CategoryID: 2, UserID: 7, Price: 50, Status: domain.StatusPending})
	s.seed(domain.Product{Name: "Old Lamp", CategoryID: 2, UserID: 8, Price: 10, Status: domain.StatusSoldOut})
}

func (s *QuerySuite) seed(p domain.Product) {
	s.Require().NoError(s.products.Create(s.ctx, &p))
}

func names(views []domain.ProductView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Name)
	}
	return out
}

func (s *QuerySuite) search(q SearchProductsQuery) []domain.ProductView {
	views, err := NewSearchProductsHandler(s.products, s.enricher).Handle(s.ctx, q)
	s.Require().NoError(err)
	return views
}

func (s *QuerySuite) TestSearchWithoutFiltersReturnsApprovedSet() {
	s.Equal([]string{"Desk Lamp", "Floor Lamp", "Lamp Oil", "Go Book"}, names(s.search(SearchProductsQuery{})))
}

func (s *QuerySuite) TestSearchFiltersAreConjunctive() {
	views := s.search(SearchProductsQuery{Keyword: "LAMP", MinPrice: ptr(100), MaxPrice: ptr(100)})
	s.Equal([]string{"Floor Lamp", "Lamp Oil"}, names(views))

	views = s.search(SearchProductsQuery{CategoryID: ptr(uint(3)), MinRating: ptr(4.0)})
	s.Equal([]string{"Go Book"}, names(views))
	s.Equal([]string{"Books"}, views[0].CategoryPath)
}

func (s *QuerySuite) TestSearchSortsStably() {
	views := s.search(SearchProductsQuery{Sort: domain.SortPriceAsc})
	s.Equal([]string{"Floor Lamp", "Lamp Oil", "Go Book", "Desk Lamp"}, names(views))

	views = s.search(SearchProductsQuery{Sort: domain.SortPriceDesc})
	s.Equal([]string{"Desk Lamp", "Go Book", "Floor Lamp", "Lamp Oil"}, names(views))

	views = s.search(SearchProductsQuery{Sort: domain.SortRatingDesc})
	s.Equal([]string{"Lamp Oil", "Desk Lamp", "Go Book", "Floor Lamp"}, names(views))

	views = s.search(SearchProductsQuery{Sort: domain.SortRatingAsc})
	s.Equal([]string{"Floor Lamp", "Desk Lamp", "Go Book", "Lamp Oil"}, names(views))
}

func (s *QuerySuite) TestRatingFilterAndSortMatchReportedAggregate() {
	create := command.NewCreateReviewHandler(s.products, s.reviews, command.NewReviewStatsWriter(s.products, s.reviews))
	orderItem := uint(0)
	review := func(productID uint, rating int) {
		orderItem++
		_, err := create.Handle(s.ctx, command.CreateReviewCommand{
			UserID: 50, ProductID: productID, OrderItemID: orderItem, Content: "ok", Rating: rating,
		})
		s.Require().NoError(err)
	}
	review(1, 2)
	review(2, 5)
	review(2, 5)
	review(3, 4)
	review(3, 3)
	review(4, 4)

	views := s.search(SearchProductsQuery{MinRating: ptr(3.5), Sort: domain.SortRatingDesc})
	s.Equal([]string{"Floor Lamp", "Go Book", "Lamp Oil"}, names(views))

	reported := make([]float64, 0, len(views))
	for _, v := range views {
		s.GreaterOrEqual(v.AverageRating, 3.5, v.Name)
		reported = append(reported, v.AverageRating)
	}
	s.Equal([]float64{5, 4, 3.5}, reported)

	views = s.search(SearchProductsQuery{Sort: domain.SortRatingAsc})
	s.Equal([]string{"Desk Lamp", "Lamp Oil", "Go Book", "Floor Lamp"}, names(views))
	s.Equal(2.0, views[0].AverageRating)
}

func (s *QuerySuite) TestListIsRoleScoped() {
	h := NewListProductsHandler(s.products, s.enricher)

	all, err := h.Handle(s.ctx, ListProductsQuery{Role: domain.RoleAdmin})
	s.Require().NoError(err)
	s.Len(all, 6)

	mine, err := h.Handle(s.ctx, ListProductsQuery{RequesterID: 7, Role: domain.RoleSeller})
	s.Require().NoError(err)
	s.Equal([]string{"Desk Lamp", "Floor Lamp", "Draft Lamp"}, names(mine))

	mine, err = h.Handle(s.ctx, ListProductsQuery{RequesterID: 8, Role: domain.RoleSeller, CategoryID: ptr(uint(2))})
	s.Require().NoError(err)
	s.Equal([]string{"Lamp Oil", "Old Lamp"}, names(mine))

	mine, err = h.Handle(s.ctx, ListProductsQuery{RequesterID: 7, Role: domain.RoleSeller, Keyword: "draft"})
	s.Require().NoError(err)
	s.Equal([]string{"Draft Lamp"}, names(mine))

	mine, err = h.Handle(s.ctx, ListProductsQuery{RequesterID: 8, Role: domain.RoleSeller, CategoryID: ptr(uint(3)), Keyword: "book"})
	s.Require().NoError(err)
	s.Equal([]string{"Go Book"}, names(mine))

	_, err = h.Handle(s.ctx, ListProductsQuery{Role: domain.RoleSeller})
	s.True(domain.IsForbiddenError(err))

	buyer, err := h.Handle(s.ctx, ListProductsQuery{RequesterID: 7, Role: domain.RoleBuyer, Keyword: "lamp", CategoryID: ptr(uint(2))})
	s.Require().NoError(err)
	s.Equal([]string{"Desk Lamp", "Floor Lamp", "Lamp Oil"}, names(buyer))
}

func (s *QuerySuite) TestByCategoryAndPending() {
	views, err := NewProductsByCategoryHandler(s.products, s.enricher).Handle(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal([]string{"Desk Lamp", "Floor Lamp", "Lamp Oil"}, names(views))
	s.Equal([]string{"Home", "Lighting"}, views[0].CategoryPath)
	s.Equal("Lighting", views[0].CategoryName)

	pending := NewPendingProductsHandler(s.products, s.enricher)
	views, err = pending.Handle(s.ctx, domain.RoleAdmin)
	s.Require().NoError(err)
	s.Equal([]string{"Draft Lamp"}, names(views))

	_, err = pending.Handle(s.ctx, domain.RoleSeller)
	s.True(domain.IsForbiddenError(err))
}

func (s *QuerySuite) TestDetailForBuyerHidesUnapproved() {
	h := NewGetProductForBuyerHandler(s.products, s.enricher)

	view, err := h.Handle(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Desk Lamp", view.Name)

	_, err = h.Handle(s.ctx, 5)
	s.True(domain.IsNotFoundError(err))
	_, err = h.Handle(s.ctx, 404)
	s.True(domain.IsNotFoundError(err))
}

func (s *QuerySuite) TestDetailForSellerRequiresOwnership() {
	h := NewGetProductForSellerHandler(s.products, s.enricher)

	_, err := h.Handle(s.ctx, GetProductForSellerQuery{ProductID: 1, RequesterID: 8, Role: domain.RoleSeller})
	s.True(domain.IsForbiddenError(err))

	_, err = h.Handle(s.ctx, GetProductForSellerQuery{ProductID: 1, RequesterID: 7, Role: domain.RoleBuyer})
	s.True(domain.IsForbiddenError(err))

	view, err := h.Handle(s.ctx, GetProductForSellerQuery{ProductID: 5, RequesterID: 7, Role: domain.RoleSeller})
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, view.Status)
}

func (s *QuerySuite) TestDetailReportsLiveAggregate() {
	s.Require().NoError(s.reviews.Create(s.ctx, &domain.Review{ProductID: 1, OrderItemID: 1, Rating: 2}))

	view, err := NewGetProductForBuyerHandler(s.products, s.enricher).Handle(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(1, view.ReviewCount)
	s.InDelta(2.0, view.AverageRating, 1e-9)
}

func (s *QuerySuite) TestProjections() {
	items, err := NewProductsByIDsHandler(s.products).Handle(s.ctx, []uint{5, 1, 404})
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(uint(1), items[0].ProductID)
	s.Equal("Draft Lamp", items[1].Name)

	item, err := NewCartItemHandler(s.products).Handle(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal("Floor Lamp", item.ProductName)
	s.Equal(100, item.Price)

	_, err = NewCartItemHandler(s.products).Handle(s.ctx, 404)
	s.True(domain.IsNotFoundError(err))

	ids, err := NewProductIDsOfHandler(s.products).Handle(s.ctx, 8)
	s.Require().NoError(err)
	s.Equal([]uint{3, 4, 6}, ids)
}

func (s *QuerySuite) TestGetInventoryOwnerOnly() {
	h := NewGetInventoryHandler(s.products)
	s.seed(domain.Product{Name: "Stocked", UserID: 9, StockQuantity: 12, Status: domain.StatusApproved})

	stock, err := h.Handle(s.ctx, GetInventoryQuery{ProductID: 7, RequesterID: 9})
	s.Require().NoError(err)
	s.Equal(12, stock)

	_, err = h.Handle(s.ctx, GetInventoryQuery{ProductID: 7, RequesterID: 7})
	s.True(domain.IsForbiddenError(err))
}

func (s *QuerySuite) TestCategoryHierarchy() {
	nodes, err := NewCategoryHierarchyHandler(s.categories).Handle(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(nodes, 2)
	s.Equal("Home", nodes[0].Name)
	s.Equal([]domain.CategoryLeaf{{ID: 2, Name: "Lighting"}}, nodes[0].Children)
	s.Empty(nodes[1].Children)
}

func (s *QuerySuite) TestKeywordSearchRecordsHistory() {
	history := repository.NewMemoryKeywordHistory(10)
	h := NewSearchByKeywordHandler(s.products, s.enricher, history)

	views, err := h.Handle(s.ctx, " lamp ")
	s.Require().NoError(err)
	s.Equal([]string{"Desk Lamp", "Floor Lamp", "Lamp Oil"}, names(views))

	_, err = h.Handle(s.ctx, "book")
	s.Require().NoError(err)
	_, err = h.Handle(s.ctx, "   ")
	s.True(domain.IsInvalidArgumentError(err))

	recent, err := NewRecentKeywordsHandler(history).Handle(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"book", "lamp"}, recent)

	recent, err = NewRecentKeywordsHandler(nil).Handle(s.ctx)
	s.Require().NoError(err)
	s.Empty(recent)
}

func (s *QuerySuite) TestSearchMine() {
	h := NewSearchMineHandler(s.products, s.enricher)

	views, err := h.Handle(s.ctx, SearchMineQuery{RequesterID: 7, Keyword: "lamp"})
	s.Require().NoError(err)
	s.Equal([]string{"Desk Lamp", "Floor Lamp", "Draft Lamp"}, names(views))

	_, err = h.Handle(s.ctx, SearchMineQuery{Keyword: "lamp"})
	s.True(domain.IsForbiddenError(err))
	_, err = h.Handle(s.ctx, SearchMineQuery{RequesterID: 7})
	s.True(domain.IsInvalidArgumentError(err))
}

func (s *QuerySuite) TestAutocomplete() {
	h := NewAutocompleteHandler(s.products)
	for i := 0; i < 12; i++ {
		s.seed(domain.Product{Name: "Lampshade", Status: domain.StatusApproved})
	}

	got, err := h.Handle(s.ctx, "la")
	s.Require().NoError(err)
	s.Len(got, AutocompleteLimit)
	s.Equal("Lamp Oil", got[0])

	_, err = h.Handle(s.ctx, "")
	s.True(domain.IsInvalidArgumentError(err))
}

func (s *QuerySuite) TestFilter() {
	h := NewFilterProductsHandler(s.products, s.enricher)

	views, err := h.Handle(s.ctx, FilterProductsQuery{CategoryID: ptr(uint(2)), MinPrice: ptr(10), MaxPrice: ptr(100), Status: "approved"})
	s.Require().NoError(err)
	s.Equal([]string{"Floor Lamp", "Lamp Oil"}, names(views))

	views, err = h.Handle(s.ctx, FilterProductsQuery{CategoryID: ptr(uint(2)), Status: "SOLD_OUT"})
	s.Require().NoError(err)
	s.Equal([]string{"Old Lamp"}, names(views))

	_, err = h.Handle(s.ctx, FilterProductsQuery{Status: ""})
	s.True(domain.IsInvalidArgumentError(err))
	_, err = h.Handle(s.ctx, FilterProductsQuery{Status: "APPROVED", MinPrice: ptr(5), MaxPrice: ptr(1)})
	s.True(domain.IsInvalidArgumentError(err))
}

func (s *QuerySuite) TestReviewReads() {
	created := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	s.Require().NoError(s.reviews.Create(s.ctx, &domain.Review{UserID: 20, ProductID: 1, OrderItemID: 100, Rating: 4, CreatedAt: created}))
	s.Require().NoError(s.reviews.Create(s.ctx, &domain.Review{UserID: 20, ProductID: 404, OrderItemID: 101, Rating: 5, CreatedAt: created}))
	s.Require().NoError(s.reviews.Create(s.ctx, &domain.Review{UserID: 21, ProductID: 1, OrderItemID: 102, Rating: 3, CreatedAt: created}))

	byProduct, err := NewReviewsByProductHandler(s.reviews).Handle(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(byProduct, 2)
	s.Equal("2024.03.09", byProduct[0].CreatedAt)

	byUser, err := NewReviewsByUserHandler(s.reviews, s.products).Handle(s.ctx, 20)
	s.Require().NoError(err)
	s.Require().Len(byUser, 2)
	s.Equal("Desk Lamp", byUser[0].ProductName)
	s.Equal(300, byUser[0].ProductPrice)
	s.Empty(byUser[1].ProductName)

	ids, err := NewReviewedOrderItemsHandler(s.reviews).Handle(s.ctx, 20)
	s.Require().NoError(err)
	s.ElementsMatch([]uint{100, 101}, ids)

	summary := NewReviewSummaryHandler(s.reviews)
	agg, err := summary.Handle(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(domain.ReviewAggregate{ReviewCount: 2, AverageRating: 3.5}, agg)

	many, err := summary.HandleMany(s.ctx, []uint{1, 2, 1})
	s.Require().NoError(err)
	s.Len(many, 2)
	s.Equal(0, many[2].ReviewCount)
}

func (s *QuerySuite) TestSellerAddresses() {
	h := NewSellerAddressesHandler(stubAddresses{body: json.RawMessage(`[{"id":1}]`)})
	body, err := h.Handle(s.ctx, 7)
	s.Require().NoError(err)
	s.JSONEq(`[{"id":1}]`, string(body))

	_, err = h.Handle(s.ctx, 0)
	s.True(domain.IsForbiddenError(err))

	_, err = NewSellerAddressesHandler(stubAddresses{err: errors.New("timeout")}).Handle(s.ctx, 7)
	s.Error(err)
}
