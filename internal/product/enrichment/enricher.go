// Package enrichment turns stored products into response views by resolving
// the category path, the seller's display names and the live review aggregate.
package enrichment

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

type Config struct {
	MaxCategoryDepth int
	Concurrency      int
}

func DefaultConfig() Config {
	return Config{MaxCategoryDepth: 32, Concurrency: 8}
}

// Enricher is safe for concurrent use.
type Enricher struct {
	categories domain.CategoryRepository
	reviews    domain.ReviewRepository
	identity   domain.IdentityLookup
	cfg        Config

	degraded *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewEnricher registers its metrics on reg when reg is non-nil.
func NewEnricher(
	categories domain.CategoryRepository,
	reviews domain.ReviewRepository,
	identity domain.IdentityLookup,
	cfg Config,
	reg prometheus.Registerer,
) *Enricher {
	if cfg.MaxCategoryDepth <= 0 {
		cfg.MaxCategoryDepth = DefaultConfig().MaxCategoryDepth
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	degraded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_enrichment_degraded_total",
			Help: "Enrichment steps that fell back to an empty value",
		},
		[]string{"field"},
	)
	latency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_enrichment_duration_seconds",
			Help:    "Time spent enriching a single product",
			Buckets: prometheus.DefBuckets,
		},
	)
	if reg != nil {
		reg.MustRegister(degraded, latency)
	}

	return &Enricher{
		categories: categories,
		reviews:    reviews,
		identity:   identity,
		cfg:        cfg,
		degraded:   degraded,
		latency:    latency,
	}
}

// Enrich builds the view of one product. Category and identity failures
// degrade the affected fields; a review store failure is returned.
func (e *Enricher) Enrich(ctx context.Context, p *domain.Product) (domain.ProductView, error) {
	return e.enrich(ctx, p, e.categoryLookup(ctx))
}

func (e *Enricher) enrich(ctx context.Context, p *domain.Product, lookup domain.CategoryLookup) (domain.ProductView, error) {
	start := time.Now()
	defer func() { e.latency.Observe(time.Since(start).Seconds()) }()

	view := domain.NewProductView(p)

	view.CategoryPath = e.categoryPath(ctx, p, lookup)
	if n := len(view.CategoryPath); n > 0 {
		view.CategoryName = view.CategoryPath[n-1]
	}

	if identity := e.lookupIdentity(ctx, p); identity != nil {
		view.UserName = identity.Name
		view.Brand = identity.CompanyName
		view.BrandName = identity.CompanyName
	}

	reviews, err := e.reviews.FindByProduct(ctx, p.ID)
	if err != nil {
		return domain.ProductView{}, fmt.Errorf("failed to load reviews of product %d: %w", p.ID, err)
	}
	agg := domain.ComputeAggregate(reviews)
	view.ReviewCount = agg.ReviewCount
	view.AverageRating = agg.AverageRating

	return view, nil
}

// EnrichAll enriches products concurrently and returns the views in input order.
// The category table is read once for the whole batch.
func (e *Enricher) EnrichAll(ctx context.Context, products []domain.Product) ([]domain.ProductView, error) {
	views := make([]domain.ProductView, len(products))
	if len(products) == 0 {
		return views, nil
	}
	lookup := e.categoryLookup(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i := range products {
		g.Go(func() error {
			view, err := e.enrich(gctx, &products[i], lookup)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// categoryLookup snapshots the category table into an arena. If the table
// cannot be listed, ancestors are read from the store one at a time.
func (e *Enricher) categoryLookup(ctx context.Context) domain.CategoryLookup {
	categories, err := e.categories.FindAll(ctx)
	if err == nil {
		return domain.NewCategoryArena(categories).Lookup
	}
	logger.Warn(ctx).Err(err).Msg("Category table unavailable, walking ancestors individually")
	return func(id uint) (*domain.Category, error) {
		return e.categories.FindByID(ctx, id)
	}
}

func (e *Enricher) categoryPath(ctx context.Context, p *domain.Product, lookup domain.CategoryLookup) []string {
	path, err := domain.ResolveCategoryPath(p.CategoryID, e.cfg.MaxCategoryDepth, lookup)
	if err != nil {
		e.degraded.WithLabelValues("category_path").Inc()
		logger.Warn(ctx).
			Err(err).
			Uint("product_id", p.ID).
			Uint("category_id", p.CategoryID).
			Int("resolved", len(path)).
			Msg("Category path resolved partially")
	}
	return path
}

func (e *Enricher) lookupIdentity(ctx context.Context, p *domain.Product) *domain.Identity {
	if e.identity == nil {
		return nil
	}
	identity, err := e.identity.LookupIdentity(ctx, p.UserID)
	if err != nil {
		e.degraded.WithLabelValues("seller_name").Inc()
		logger.Warn(ctx).
			Err(err).
			Uint("product_id", p.ID).
			Uint("owner_id", p.UserID).
			Msg("Seller identity unavailable")
		return nil
	}
	return identity
}
