package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/repository"
)

type recordingInquiries struct {
	bodies []map[string]interface{}
	err    error
}

func (r *recordingInquiries) SubmitInquiry(_ context.Context, fields map[string]interface{}) error {
	r.bodies = append(r.bodies, fields)
	return r.err
}

type CommandSuite struct {
	suite.Suite
	ctx       context.Context
	products  *repository.MemoryProductRepository
	reviews   *repository.MemoryReviewRepository
	stats     *ReviewStatsWriter
	inquiries *recordingInquiries
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandSuite))
}

func (s *CommandSuite) SetupTest() {
	s.ctx = context.Background()
	s.products = repository.NewMemoryProductRepository()
	s.reviews = repository.NewMemoryReviewRepository()
	s.stats = NewReviewStatsWriter(s.products, s.reviews)
	s.inquiries = &recordingInquiries{}
}

func (s *CommandSuite) validFields() Fields {
	return Fields{
		"image":           "/img/p.jpg",
		"userId":          99,
		"sellerAddressId": "3",
		"name":            "Desk Lamp",
		"categoryId":      float64(4),
		"price":           "12000",
		"discountPrice":   0,
		"stockQuantity":   10,
		"description":     "warm light",
		"courierName":     "CJ",
		"shippingFee":     3000,
	}
}

func (s *CommandSuite) createProduct(owner uint) *domain.Product {
	cmd, err := CreateProductCommandFromFields(owner, domain.RoleSeller, s.validFields())
	s.Require().NoError(err)
	p, err := NewCreateProductHandler(s.products).Handle(s.ctx, cmd)
	s.Require().NoError(err)
	return p
}

func (s *CommandSuite) TestCreateProductStartsPending() {
	p := s.createProduct(7)

	s.Equal(domain.StatusPending, p.Status)
	s.False(p.IsApproved)
	s.Equal(uint(7), p.UserID, "owner is the requester, not the body")
	s.Equal(12000, p.Price)
	s.Equal(uint(3), p.SellerAddressID)
	s.Equal(uint(4), p.CategoryID)
	s.False(p.AddedAt.IsZero())
}

func (s *CommandSuite) TestCreateProductRejectsBadInput() {
	f := s.validFields()
	delete(f, "courierName")
	_, err := CreateProductCommandFromFields(7, domain.RoleSeller, f)
	s.True(domain.IsInvalidArgumentError(err))

	f = s.validFields()
	f["price"] = "twelve"
	_, err = CreateProductCommandFromFields(7, domain.RoleSeller, f)
	s.True(domain.IsInvalidArgumentError(err))

	f = s.validFields()
	f["price"] = -1
	cmd, err := CreateProductCommandFromFields(7, domain.RoleSeller, f)
	s.Require().NoError(err)
	_, err = NewCreateProductHandler(s.products).Handle(s.ctx, cmd)
	s.True(domain.IsInvalidArgumentError(err))
}

func (s *CommandSuite) TestCreateProductRequiresSeller() {
	cmd, err := CreateProductCommandFromFields(7, domain.RoleBuyer, s.validFields())
	s.Require().NoError(err)

	_, err = NewCreateProductHandler(s.products).Handle(s.ctx, cmd)
	s.True(domain.IsForbiddenError(err))

	cmd.Role = domain.RoleSeller
	cmd.RequesterID = 0
	_, err = NewCreateProductHandler(s.products).Handle(s.ctx, cmd)
	s.True(domain.IsForbiddenError(err))
}

func (s *CommandSuite) TestLifecycleScenario() {
	p := s.createProduct(7)
	status := NewChangeStatusHandler(s.products)
	inventory := NewSetInventoryHandler(s.products)

	got, err := status.Handle(s.ctx, ChangeStatusCommand{ProductID: p.ID, ActorID: 1, Role: domain.RoleAdmin, Transition: TransitionApprove})
	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, got.Status)
	s.True(got.IsApproved)

	got, err = inventory.Handle(s.ctx, SetInventoryCommand{ProductID: p.ID, RequesterID: 7, Stock: 0})
	s.Require().NoError(err)
	s.Equal(domain.StatusSoldOut, got.Status)

	got, err = inventory.Handle(s.ctx, SetInventoryCommand{ProductID: p.ID, RequesterID: 7, Stock: 3})
	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, got.Status)

	stored, err := s.products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, stored.Status)
	s.Equal(3, stored.StockQuantity)
}

func (s *CommandSuite) TestSetInventoryKeepsPending() {
	p := s.createProduct(7)

	got, err := NewSetInventoryHandler(s.products).Handle(s.ctx, SetInventoryCommand{ProductID: p.ID, RequesterID: 7, Stock: 5})
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, got.Status)
}

func (s *CommandSuite) TestSetInventoryChecksOwnerFirst() {
	p := s.createProduct(7)

	_, err := NewSetInventoryHandler(s.products).Handle(s.ctx, SetInventoryCommand{ProductID: p.ID, RequesterID: 8, Stock: 0})
	s.True(domain.IsForbiddenError(err))

	stored, _ := s.products.FindByID(s.ctx, p.ID)
	s.Equal(10, stored.StockQuantity)
	s.Equal(domain.StatusPending, stored.Status)

	_, err = NewSetInventoryHandler(s.products).Handle(s.ctx, SetInventoryCommand{ProductID: 404, RequesterID: 7, Stock: 1})
	s.True(domain.IsNotFoundError(err))
}

func (s *CommandSuite) TestChangeStatusRequiresAdmin() {
	p := s.createProduct(7)

	_, err := NewChangeStatusHandler(s.products).Handle(s.ctx, ChangeStatusCommand{ProductID: p.ID, ActorID: 7, Role: domain.RoleSeller, Transition: TransitionApprove})
	s.True(domain.IsForbiddenError(err))

	_, err = NewChangeStatusHandler(s.products).Handle(s.ctx, ChangeStatusCommand{ProductID: p.ID, Role: domain.RoleAdmin, Transition: "archive"})
	s.True(domain.IsInvalidArgumentError(err))
}

func (s *CommandSuite) TestRejectAndResetFromAnyState() {
	p := s.createProduct(7)
	h := NewChangeStatusHandler(s.products)

	got, err := h.Handle(s.ctx, ChangeStatusCommand{ProductID: p.ID, Role: domain.RoleAdmin, Transition: TransitionReject})
	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, got.Status)
	s.False(got.IsApproved)

	got, err = h.Handle(s.ctx, ChangeStatusCommand{ProductID: p.ID, Role: domain.RoleAdmin, Transition: TransitionPending})
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, got.Status)
	s.False(got.IsApproved)
}

func (s *CommandSuite) TestEditMergesPresentFieldsOnly() {
	p := s.createProduct(7)

	err := NewEditProductHandler(s.products).Handle(s.ctx, EditProductCommand{
		ProductID:   p.ID,
		RequesterID: 7,
		Fields: Fields{
			"name":          "Floor Lamp",
			"description":   "   ",
			"price":         "15000",
			"status":        "APPROVED",
			"stockQuantity": 0,
			"courierName":   nil,
		},
	})
	s.Require().NoError(err)

	stored, _ := s.products.FindByID(s.ctx, p.ID)
	s.Equal("Floor Lamp", stored.Name)
	s.Equal("warm light", stored.Description)
	s.Equal(15000, stored.Price)
	s.Equal("CJ", stored.CourierName)
	s.Equal(domain.StatusPending, stored.Status)
	s.Equal(10, stored.StockQuantity)
}

func (s *CommandSuite) TestEditRejectsNonOwnerAndBadNumbers() {
	p := s.createProduct(7)
	h := NewEditProductHandler(s.products)

	err := h.Handle(s.ctx, EditProductCommand{ProductID: p.ID, RequesterID: 8, Fields: Fields{"name": "x"}})
	s.True(domain.IsForbiddenError(err))

	err = h.Handle(s.ctx, EditProductCommand{ProductID: p.ID, RequesterID: 7, Fields: Fields{"price": "abc"}})
	s.True(domain.IsInvalidArgumentError(err))
}

func (s *CommandSuite) TestDeleteProduct() {
	p := s.createProduct(7)
	h := NewDeleteProductHandler(s.products)

	s.True(domain.IsForbiddenError(h.Handle(s.ctx, DeleteProductCommand{ProductID: p.ID, RequesterID: 0})))
	s.NoError(h.Handle(s.ctx, DeleteProductCommand{ProductID: p.ID, RequesterID: 7}))
	s.True(domain.IsNotFoundError(h.Handle(s.ctx, DeleteProductCommand{ProductID: p.ID, RequesterID: 7})))
}

func (s *CommandSuite) TestRecordSale() {
	p := s.createProduct(7)
	h := NewRecordSaleHandler(s.products)

	s.NoError(h.Handle(s.ctx, RecordSaleCommand{ProductID: p.ID, Quantity: 2}))
	s.NoError(h.Handle(s.ctx, RecordSaleCommand{ProductID: p.ID, Quantity: 3}))
	s.True(domain.IsInvalidArgumentError(h.Handle(s.ctx, RecordSaleCommand{ProductID: p.ID, Quantity: 0})))

	stored, _ := s.products.FindByID(s.ctx, p.ID)
	s.Equal(5, stored.SalesCount)
}

func (s *CommandSuite) TestSubmitInquiryMergesProductID() {
	p := s.createProduct(7)
	h := NewSubmitInquiryHandler(s.products, s.inquiries)

	s.Require().NoError(h.Handle(s.ctx, SubmitInquiryCommand{ProductID: p.ID, Fields: Fields{"title": "size?", "product_id": 999}}))
	s.Require().Len(s.inquiries.bodies, 1)
	s.Equal(p.ID, s.inquiries.bodies[0]["product_id"])
	s.Equal("size?", s.inquiries.bodies[0]["title"])

	s.True(domain.IsNotFoundError(h.Handle(s.ctx, SubmitInquiryCommand{ProductID: 404})))

	s.inquiries.err = errors.New("qna down")
	s.Error(h.Handle(s.ctx, SubmitInquiryCommand{ProductID: p.ID}))
}

func (s *CommandSuite) createReview(productID, userID, orderItemID uint, rating int) (*domain.Review, error) {
	return NewCreateReviewHandler(s.products, s.reviews, s.stats).Handle(s.ctx, CreateReviewCommand{
		UserID: userID, ProductID: productID, OrderItemID: orderItemID, Content: "good", Rating: rating,
	})
}

func (s *CommandSuite) TestCreateReviewConflictOnOrderItem() {
	p := s.createProduct(7)

	r, err := s.createReview(p.ID, 20, 501, 4)
	s.Require().NoError(err)
	s.Equal(domain.DefaultReviewImage, r.Image)

	_, err = s.createReview(p.ID, 21, 501, 5)
	s.True(domain.IsConflictError(err), "uniqueness is on the order item alone")

	ids, err := s.reviews.FindOrderItemIDsByUser(s.ctx, 20)
	s.Require().NoError(err)
	s.Equal([]uint{501}, ids)
}

func (s *CommandSuite) TestCreateReviewValidatesRating() {
	p := s.createProduct(7)

	_, err := s.createReview(p.ID, 20, 1, 0)
	s.True(domain.IsInvalidArgumentError(err))
	_, err = s.createReview(p.ID, 20, 1, 6)
	s.True(domain.IsInvalidArgumentError(err))
	_, err = s.createReview(404, 20, 1, 5)
	s.True(domain.IsNotFoundError(err))
}

func (s *CommandSuite) TestReviewWritesThroughStoredCounters() {
	p := s.createProduct(7)
	for i, rating := range []int{4, 5, 3} {
		_, err := s.createReview(p.ID, uint(20+i), uint(100+i), rating)
		s.Require().NoError(err)
	}

	stored, _ := s.products.FindByID(s.ctx, p.ID)
	s.Equal(3, stored.ReviewCount)
	s.InDelta(4.0, stored.AverageRating, 1e-9)

	s.Require().NoError(NewDeleteReviewHandler(s.reviews, s.stats).Handle(s.ctx, DeleteReviewCommand{ReviewID: 3, RequesterID: 22}))
	stored, _ = s.products.FindByID(s.ctx, p.ID)
	s.Equal(2, stored.ReviewCount)
	s.InDelta(4.5, stored.AverageRating, 1e-9)
}

func (s *CommandSuite) TestUpdateReview() {
	p := s.createProduct(7)
	r, err := s.createReview(p.ID, 20, 1, 2)
	s.Require().NoError(err)
	h := NewUpdateReviewHandler(s.reviews, s.stats)

	_, err = h.Handle(s.ctx, UpdateReviewCommand{ReviewID: r.ID, RequesterID: 21, Content: "x", Rating: 5})
	s.True(domain.IsForbiddenError(err))

	_, err = h.Handle(s.ctx, UpdateReviewCommand{ReviewID: 404, RequesterID: 20, Content: "x", Rating: 5})
	s.True(domain.IsNotFoundError(err))

	updated, err := h.Handle(s.ctx, UpdateReviewCommand{ReviewID: r.ID, RequesterID: 20, Content: "better", Image: "/r/1.jpg", Rating: 5})
	s.Require().NoError(err)
	s.Equal("better", updated.Content)

	stored, _ := s.reviews.FindByID(s.ctx, r.ID)
	s.Equal(5, stored.Rating)
	s.Equal("/r/1.jpg", stored.Image)
	s.Equal(r.OrderItemID, stored.OrderItemID)

	product, _ := s.products.FindByID(s.ctx, p.ID)
	s.InDelta(5.0, product.AverageRating, 1e-9)
}

func (s *CommandSuite) TestDeleteReviewMissing() {
	err := NewDeleteReviewHandler(s.reviews, s.stats).Handle(s.ctx, DeleteReviewCommand{ReviewID: 1, RequesterID: 1})
	s.True(domain.IsNotFoundError(err))
}

func (s *CommandSuite) TestReviewCommandsFromFields() {
	cmd, err := CreateReviewCommandFromFields(Fields{
		"user_id": "20", "product_id": 1, "order_item_id": float64(9), "content": "ok", "rating": "4", "image": "",
	})
	s.Require().NoError(err)
	s.Equal(uint(9), cmd.OrderItemID)
	s.Equal(4, cmd.Rating)

	_, err = CreateReviewCommandFromFields(Fields{"user_id": 1})
	s.True(domain.IsInvalidArgumentError(err))

	upd, err := UpdateReviewCommandFromFields(20, Fields{"review_id": 3, "content": "c", "rating": 1})
	s.Require().NoError(err)
	s.Equal(uint(3), upd.ReviewID)
	s.Equal(uint(20), upd.RequesterID)
}
