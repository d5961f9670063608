package repository

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/catalog-service/internal/product/domain"
)

var tracer = otel.Tracer("catalog-repository")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finishSpan records err on the span. Not-found lookups are expected
// outcomes and leave the span status unset.
func finishSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil || domain.IsNotFoundError(err) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, fmt.Sprintf("database error: %v", err))
}

func countAttr(n int) attribute.KeyValue {
	return attribute.Int("result.count", n)
}

// TracingProductRepository wraps a ProductRepository with spans.
type TracingProductRepository struct {
	next domain.ProductRepository
}

func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) (err error) {
	ctx, span := startSpan(ctx, "repository.product.Create",
		attribute.String("product.name", product.Name),
		attribute.Int("product.owner", int(product.UserID)),
		attribute.Int("product.category", int(product.CategoryID)),
	)
	defer func() { finishSpan(span, err) }()

	if err = r.next.Create(ctx, product); err == nil {
		span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	}
	return err
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id uint) (p *domain.Product, err error) {
	ctx, span := startSpan(ctx, "repository.product.FindByID", attribute.Int("product.id", int(id)))
	defer func() { finishSpan(span, err) }()

	p, err = r.next.FindByID(ctx, id)
	if err == nil {
		span.SetAttributes(attribute.String("product.status", string(p.Status)))
	}
	return p, err
}

func (r *TracingProductRepository) FindByIDs(ctx context.Context, ids []uint) (out []domain.Product, err error) {
	ctx, span := startSpan(ctx, "repository.product.FindByIDs", attribute.Int("query.ids", len(ids)))
	defer func() { finishSpan(span, err) }()

	out, err = r.next.FindByIDs(ctx, ids)
	span.SetAttributes(countAttr(len(out)))
	return out, err
}

func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) (err error) {
	ctx, span := startSpan(ctx, "repository.product.Update",
		attribute.Int("product.id", int(product.ID)),
		attribute.String("product.status", string(product.Status)),
	)
	defer func() { finishSpan(span, err) }()
	return r.next.Update(ctx, product)
}

func (r *TracingProductRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "repository.product.Delete", attribute.Int("product.id", int(id)))
	defer func() { finishSpan(span, err) }()
	return r.next.Delete(ctx, id)
}

func (r *TracingProductRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, span := startSpan(ctx, "repository.product.Count")
	defer func() { finishSpan(span, err) }()

	n, err = r.next.Count(ctx)
	span.SetAttributes(attribute.Int64("result.count", n))
	return n, err
}

func (r *TracingProductRepository) list(ctx context.Context, name string, fn func(context.Context) ([]domain.Product, error), attrs ...attribute.KeyValue) (out []domain.Product, err error) {
	ctx, span := startSpan(ctx, "repository.product."+name, attrs...)
	defer func() { finishSpan(span, err) }()

	out, err = fn(ctx)
	span.SetAttributes(countAttr(len(out)))
	return out, err
}

func (r *TracingProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, "FindAll", r.next.FindAll)
}

func (r *TracingProductRepository) FindByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	return r.list(ctx, "FindByStatus", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByStatus(ctx, status)
	}, attribute.String("query.status", string(status)))
}

func (r *TracingProductRepository) FindByCategoryAndStatus(ctx context.Context, categoryID uint, status domain.ProductStatus) ([]domain.Product, error) {
	return r.list(ctx, "FindByCategoryAndStatus", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByCategoryAndStatus(ctx, categoryID, status)
	}, attribute.Int("query.category", int(categoryID)), attribute.String("query.status", string(status)))
}

func (r *TracingProductRepository) FindByNameAndStatus(ctx context.Context, keyword string, status domain.ProductStatus) ([]domain.Product, error) {
	return r.list(ctx, "FindByNameAndStatus", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByNameAndStatus(ctx, keyword, status)
	}, attribute.String("query.keyword", keyword), attribute.String("query.status", string(status)))
}

func (r *TracingProductRepository) FindByCategoryNameAndStatus(ctx context.Context, categoryID uint, keyword string, status domain.ProductStatus) ([]domain.Product, error) {
	return r.list(ctx, "FindByCategoryNameAndStatus", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByCategoryNameAndStatus(ctx, categoryID, keyword, status)
	}, attribute.Int("query.category", int(categoryID)), attribute.String("query.keyword", keyword))
}

func (r *TracingProductRepository) FindByOwner(ctx context.Context, userID uint) ([]domain.Product, error) {
	return r.list(ctx, "FindByOwner", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByOwner(ctx, userID)
	}, attribute.Int("query.owner", int(userID)))
}

func (r *TracingProductRepository) FindByOwnerAndCategory(ctx context.Context, userID, categoryID uint) ([]domain.Product, error) {
	return r.list(ctx, "FindByOwnerAndCategory", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByOwnerAndCategory(ctx, userID, categoryID)
	}, attribute.Int("query.owner", int(userID)), attribute.Int("query.category", int(categoryID)))
}

func (r *TracingProductRepository) FindByOwnerAndName(ctx context.Context, userID uint, keyword string) ([]domain.Product, error) {
	return r.list(ctx, "FindByOwnerAndName", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByOwnerAndName(ctx, userID, keyword)
	}, attribute.Int("query.owner", int(userID)), attribute.String("query.keyword", keyword))
}

func (r *TracingProductRepository) FindByOwnerCategoryAndName(ctx context.Context, userID, categoryID uint, keyword string) ([]domain.Product, error) {
	return r.list(ctx, "FindByOwnerCategoryAndName", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.FindByOwnerCategoryAndName(ctx, userID, categoryID, keyword)
	}, attribute.Int("query.owner", int(userID)), attribute.Int("query.category", int(categoryID)), attribute.String("query.keyword", keyword))
}

func (r *TracingProductRepository) Search(ctx context.Context, c domain.SearchCriteria) ([]domain.Product, error) {
	attrs := []attribute.KeyValue{attribute.String("query.keyword", c.Keyword)}
	if c.CategoryID != nil {
		attrs = append(attrs, attribute.Int("query.category", int(*c.CategoryID)))
	}
	if c.Status != nil {
		attrs = append(attrs, attribute.String("query.status", string(*c.Status)))
	}
	return r.list(ctx, "Search", func(ctx context.Context) ([]domain.Product, error) {
		return r.next.Search(ctx, c)
	}, attrs...)
}

func (r *TracingProductRepository) FindNamesByPrefix(ctx context.Context, prefix string, limit int) (names []string, err error) {
	ctx, span := startSpan(ctx, "repository.product.FindNamesByPrefix",
		attribute.String("query.prefix", prefix),
		attribute.Int("query.limit", limit),
	)
	defer func() { finishSpan(span, err) }()

	names, err = r.next.FindNamesByPrefix(ctx, prefix, limit)
	span.SetAttributes(countAttr(len(names)))
	return names, err
}

func (r *TracingProductRepository) IncrementSales(ctx context.Context, id uint, quantity int) (err error) {
	ctx, span := startSpan(ctx, "repository.product.IncrementSales",
		attribute.Int("product.id", int(id)),
		attribute.Int("sales.quantity", quantity),
	)
	defer func() { finishSpan(span, err) }()
	return r.next.IncrementSales(ctx, id, quantity)
}

func (r *TracingProductRepository) UpdateReviewStats(ctx context.Context, id uint, count int, average float64) (err error) {
	ctx, span := startSpan(ctx, "repository.product.UpdateReviewStats",
		attribute.Int("product.id", int(id)),
		attribute.Int("review.count", count),
		attribute.Float64("review.average", average),
	)
	defer func() { finishSpan(span, err) }()
	return r.next.UpdateReviewStats(ctx, id, count, average)
}

// TracingCategoryRepository wraps a CategoryRepository with spans.
type TracingCategoryRepository struct {
	next domain.CategoryRepository
}

func NewTracingCategoryRepository(next domain.CategoryRepository) *TracingCategoryRepository {
	return &TracingCategoryRepository{next: next}
}

func (r *TracingCategoryRepository) FindByID(ctx context.Context, id uint) (c *domain.Category, err error) {
	ctx, span := startSpan(ctx, "repository.category.FindByID", attribute.Int("category.id", int(id)))
	defer func() { finishSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

func (r *TracingCategoryRepository) FindAll(ctx context.Context) (out []domain.Category, err error) {
	ctx, span := startSpan(ctx, "repository.category.FindAll")
	defer func() { finishSpan(span, err) }()

	out, err = r.next.FindAll(ctx)
	span.SetAttributes(countAttr(len(out)))
	return out, err
}

// TracingReviewRepository wraps a ReviewRepository with spans.
type TracingReviewRepository struct {
	next domain.ReviewRepository
}

func NewTracingReviewRepository(next domain.ReviewRepository) *TracingReviewRepository {
	return &TracingReviewRepository{next: next}
}

func (r *TracingReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	ctx, span := startSpan(ctx, "repository.review.Create",
		attribute.Int("review.product", int(review.ProductID)),
		attribute.Int("review.order_item", int(review.OrderItemID)),
	)
	defer func() { finishSpan(span, err) }()
	return r.next.Create(ctx, review)
}

func (r *TracingReviewRepository) FindByID(ctx context.Context, id uint) (rv *domain.Review, err error) {
	ctx, span := startSpan(ctx, "repository.review.FindByID", attribute.Int("review.id", int(id)))
	defer func() { finishSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

func (r *TracingReviewRepository) ExistsByOrderItemID(ctx context.Context, orderItemID uint) (ok bool, err error) {
	ctx, span := startSpan(ctx, "repository.review.ExistsByOrderItemID", attribute.Int("review.order_item", int(orderItemID)))
	defer func() { finishSpan(span, err) }()
	return r.next.ExistsByOrderItemID(ctx, orderItemID)
}

func (r *TracingReviewRepository) Update(ctx context.Context, review *domain.Review) (err error) {
	ctx, span := startSpan(ctx, "repository.review.Update", attribute.Int("review.id", int(review.ID)))
	defer func() { finishSpan(span, err) }()
	return r.next.Update(ctx, review)
}

func (r *TracingReviewRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "repository.review.Delete", attribute.Int("review.id", int(id)))
	defer func() { finishSpan(span, err) }()
	return r.next.Delete(ctx, id)
}

func (r *TracingReviewRepository) FindByProduct(ctx context.Context, productID uint) (out []domain.Review, err error) {
	ctx, span := startSpan(ctx, "repository.review.FindByProduct", attribute.Int("review.product", int(productID)))
	defer func() { finishSpan(span, err) }()

	out, err = r.next.FindByProduct(ctx, productID)
	span.SetAttributes(countAttr(len(out)))
	return out, err
}

func (r *TracingReviewRepository) FindByUser(ctx context.Context, userID uint) (out []domain.Review, err error) {
	ctx, span := startSpan(ctx, "repository.review.FindByUser", attribute.Int("review.user", int(userID)))
	defer func() { finishSpan(span, err) }()

	out, err = r.next.FindByUser(ctx, userID)
	span.SetAttributes(countAttr(len(out)))
	return out, err
}

func (r *TracingReviewRepository) FindOrderItemIDsByUser(ctx context.Context, userID uint) (out []uint, err error) {
	ctx, span := startSpan(ctx, "repository.review.FindOrderItemIDsByUser", attribute.Int("review.user", int(userID)))
	defer func() { finishSpan(span, err) }()

	out, err = r.next.FindOrderItemIDsByUser(ctx, userID)
	span.SetAttributes(countAttr(len(out)))
	return out, err
}

var (
	_ domain.ProductRepository  = (*TracingProductRepository)(nil)
	_ domain.CategoryRepository = (*TracingCategoryRepository)(nil)
	_ domain.ReviewRepository   = (*TracingReviewRepository)(nil)
)
