package enrichment

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/repository"
)

type fakeIdentity struct {
	names map[uint]domain.Identity
	calls atomic.Int32
	delay time.Duration
}

func (f *fakeIdentity) LookupIdentity(ctx context.Context, userID uint) (*domain.Identity, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	id, ok := f.names[userID]
	if !ok {
		return nil, errors.New("user service unavailable")
	}
	return &id, nil
}

type failingReviews struct {
	domain.ReviewRepository
}

func (failingReviews) FindByProduct(context.Context, uint) ([]domain.Review, error) {
	return nil, errors.New("connection refused")
}

// countingCategories records how often the store is read.
type countingCategories struct {
	domain.CategoryRepository
	byID    atomic.Int32
	all     atomic.Int32
	listErr error
}

func (c *countingCategories) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	c.byID.Add(1)
	return c.CategoryRepository.FindByID(ctx, id)
}

func (c *countingCategories) FindAll(ctx context.Context) ([]domain.Category, error) {
	c.all.Add(1)
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.CategoryRepository.FindAll(ctx)
}

func parent(id uint) *uint { return &id }

func newFixture(t *testing.T) (*repository.MemoryCategoryRepository, *repository.MemoryReviewRepository, *fakeIdentity) {
	t.Helper()
	categories := repository.NewMemoryCategoryRepository(
		domain.Category{ID: 3, Name: "C"},
		domain.Category{ID: 2, Name: "B", ParentID: parent(3)},
		domain.Category{ID: 1, Name: "A", ParentID: parent(2)},
	)
	reviews := repository.NewMemoryReviewRepository()
	identity := &fakeIdentity{names: map[uint]domain.Identity{
		7: {Name: "Kim", CompanyName: "Kim Store"},
	}}
	return categories, reviews, identity
}

func TestEnrichResolvesAllFields(t *testing.T) {
	ctx := context.Background()
	categories, reviews, identity := newFixture(t)
	for i, rating := range []int{4, 5, 3} {
		require.NoError(t, reviews.Create(ctx, &domain.Review{ProductID: 10, OrderItemID: uint(i + 1), Rating: rating}))
	}

	e := NewEnricher(categories, reviews, identity, DefaultConfig(), prometheus.NewRegistry())
	p := &domain.Product{ID: 10, CategoryID: 1, UserID: 7, ReviewCount: 99, AverageRating: 1.5,
		AddedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

	view, err := e.Enrich(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, view.CategoryPath)
	assert.Equal(t, "A", view.CategoryName)
	assert.Equal(t, "Kim", view.UserName)
	assert.Equal(t, "Kim Store", view.Brand)
	assert.Equal(t, "Kim Store", view.BrandName)
	assert.Equal(t, 3, view.ReviewCount)
	assert.InDelta(t, 4.0, view.AverageRating, 1e-9)
	assert.Equal(t, "2024-05-01", view.AddedAt)
}

func TestEnrichDegradesOnRemoteFailures(t *testing.T) {
	ctx := context.Background()
	categories, reviews, identity := newFixture(t)
	categories.Put(domain.Category{ID: 4, Name: "Orphan", ParentID: parent(404)})

	reg := prometheus.NewRegistry()
	e := NewEnricher(categories, reviews, identity, DefaultConfig(), reg)

	view, err := e.Enrich(ctx, &domain.Product{ID: 1, CategoryID: 4, UserID: 8})
	require.NoError(t, err)
	assert.Equal(t, []string{"Orphan"}, view.CategoryPath)
	assert.Equal(t, "Orphan", view.CategoryName)
	assert.Equal(t, "", view.BrandName)
	assert.Equal(t, "", view.UserName)
	assert.Equal(t, 0, view.ReviewCount)
	assert.Equal(t, 0.0, view.AverageRating)

	assert.Equal(t, 1.0, testutil.ToFloat64(e.degraded.WithLabelValues("category_path")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.degraded.WithLabelValues("seller_name")))
}

func TestEnrichMissingCategoryYieldsEmptyName(t *testing.T) {
	categories, reviews, identity := newFixture(t)
	e := NewEnricher(categories, reviews, identity, DefaultConfig(), nil)

	view, err := e.Enrich(context.Background(), &domain.Product{ID: 1, CategoryID: 99, UserID: 7})
	require.NoError(t, err)
	assert.Empty(t, view.CategoryPath)
	assert.Equal(t, "", view.CategoryName)
}

func TestEnrichPropagatesReviewStoreFailure(t *testing.T) {
	categories, _, identity := newFixture(t)
	e := NewEnricher(categories, failingReviews{}, identity, DefaultConfig(), nil)

	_, err := e.Enrich(context.Background(), &domain.Product{ID: 1, CategoryID: 1, UserID: 7})
	assert.Error(t, err)

	_, err = e.EnrichAll(context.Background(), []domain.Product{{ID: 1}, {ID: 2}})
	assert.Error(t, err)
}

func TestEnrichAllPreservesOrder(t *testing.T) {
	categories, reviews, identity := newFixture(t)
	identity.delay = 5 * time.Millisecond

	e := NewEnricher(categories, reviews, identity, Config{MaxCategoryDepth: 8, Concurrency: 4}, nil)

	products := make([]domain.Product, 20)
	for i := range products {
		products[i] = domain.Product{ID: uint(i + 1), CategoryID: 1, UserID: 7}
	}

	views, err := e.EnrichAll(context.Background(), products)
	require.NoError(t, err)
	require.Len(t, views, len(products))
	for i, v := range views {
		assert.Equal(t, uint(i+1), v.ProductID)
		assert.Equal(t, "Kim Store", v.BrandName)
	}
	assert.Equal(t, int32(len(products)), identity.calls.Load())
}

func TestEnrichAllEmpty(t *testing.T) {
	categories, reviews, identity := newFixture(t)
	e := NewEnricher(categories, reviews, identity, DefaultConfig(), nil)

	views, err := e.EnrichAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestEnrichAllReadsCategoriesOnce(t *testing.T) {
	categories, reviews, identity := newFixture(t)
	counted := &countingCategories{CategoryRepository: categories}
	e := NewEnricher(counted, reviews, identity, DefaultConfig(), nil)

	products := make([]domain.Product, 10)
	for i := range products {
		products[i] = domain.Product{ID: uint(i + 1), CategoryID: 1, UserID: 7}
	}

	views, err := e.EnrichAll(context.Background(), products)
	require.NoError(t, err)
	for _, v := range views {
		assert.Equal(t, []string{"C", "B", "A"}, v.CategoryPath)
	}
	assert.Equal(t, int32(1), counted.all.Load())
	assert.Equal(t, int32(0), counted.byID.Load())
}

func TestEnrichWalksStoreWhenListingFails(t *testing.T) {
	categories, reviews, identity := newFixture(t)
	counted := &countingCategories{CategoryRepository: categories, listErr: errors.New("timeout")}
	e := NewEnricher(counted, reviews, identity, DefaultConfig(), nil)

	view, err := e.Enrich(context.Background(), &domain.Product{ID: 1, CategoryID: 1, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, view.CategoryPath)
	assert.Equal(t, int32(3), counted.byID.Load())
}
