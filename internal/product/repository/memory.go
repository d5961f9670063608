package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tair/catalog-service/internal/product/domain"
)

func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// MemoryProductRepository is a thread-safe in-memory ProductRepository.
// Records are returned in ascending id order, like the SQL store.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	nextID   uint
	products map[uint]domain.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[uint]domain.Product)}
}

var _ domain.ProductRepository = (*MemoryProductRepository)(nil)

func (s *MemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == 0 {
		s.nextID++
		product.ID = s.nextID
	} else if product.ID > s.nextID {
		s.nextID = product.ID
	}
	if product.AddedAt.IsZero() {
		product.AddedAt = time.Now()
	}
	s.products[product.ID] = *product
	return nil
}

func (s *MemoryProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("product", id)
	}
	return &p, nil
}

func (s *MemoryProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return s.filter(ctx, func(p *domain.Product) bool {
		_, ok := wanted[p.ID]
		return ok
	})
}

func (s *MemoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.products[product.ID]
	if !ok {
		return domain.NewNotFoundError("product", product.ID)
	}
	product.SalesCount = stored.SalesCount
	product.ReviewCount = stored.ReviewCount
	product.AverageRating = stored.AverageRating
	s.products[product.ID] = *product
	return nil
}

func (s *MemoryProductRepository) Delete(ctx context.Context, id uint) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return domain.NewNotFoundError("product", id)
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryProductRepository) Count(ctx context.Context) (int64, error) {
	if err := ctxErr(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *MemoryProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.filter(ctx, func(*domain.Product) bool { return true })
}

func (s *MemoryProductRepository) FindByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	return s.Search(ctx, domain.SearchCriteria{Status: &status})
}

func (s *MemoryProductRepository) FindByCategoryAndStatus(ctx context.Context, categoryID uint, status domain.ProductStatus) ([]domain.Product, error) {
	return s.Search(ctx, domain.SearchCriteria{Status: &status, CategoryID: &categoryID})
}

func (s *MemoryProductRepository) FindByNameAndStatus(ctx context.Context, keyword string, status domain.ProductStatus) ([]domain.Product, error) {
	return s.Search(ctx, domain.SearchCriteria{Status: &status, Keyword: keyword})
}

func (s *MemoryProductRepository) FindByCategoryNameAndStatus(ctx context.Context, categoryID uint, keyword string, status domain.ProductStatus) ([]domain.Product, error) {
	return s.Search(ctx, domain.SearchCriteria{Status: &status, CategoryID: &categoryID, Keyword: keyword})
}

func (s *MemoryProductRepository) FindByOwner(ctx context.Context, userID uint) ([]domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.UserID == userID })
}

func (s *MemoryProductRepository) FindByOwnerAndCategory(ctx context.Context, userID, categoryID uint) ([]domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool {
		return p.UserID == userID && p.CategoryID == categoryID
	})
}

func (s *MemoryProductRepository) FindByOwnerAndName(ctx context.Context, userID uint, keyword string) ([]domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool {
		return p.UserID == userID && domain.ContainsFold(p.Name, keyword)
	})
}

func (s *MemoryProductRepository) FindByOwnerCategoryAndName(ctx context.Context, userID, categoryID uint, keyword string) ([]domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool {
		return p.UserID == userID && p.CategoryID == categoryID && domain.ContainsFold(p.Name, keyword)
	})
}

func (s *MemoryProductRepository) Search(ctx context.Context, c domain.SearchCriteria) ([]domain.Product, error) {
	return s.filter(ctx, c.Matches)
}

func (s *MemoryProductRepository) FindNamesByPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	lower := strings.ToLower(prefix)
	matches, err := s.filter(ctx, func(p *domain.Product) bool {
		return strings.HasPrefix(strings.ToLower(p.Name), lower)
	})
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, p := range matches {
		if len(names) == limit {
			break
		}
		names = append(names, p.Name)
	}
	return names, nil
}

func (s *MemoryProductRepository) IncrementSales(ctx context.Context, id uint, quantity int) error {
	return s.mutate(ctx, id, func(p *domain.Product) { p.SalesCount += quantity })
}

func (s *MemoryProductRepository) UpdateReviewStats(ctx context.Context, id uint, count int, average float64) error {
	return s.mutate(ctx, id, func(p *domain.Product) {
		p.ReviewCount = count
		p.AverageRating = average
	})
}

func (s *MemoryProductRepository) mutate(ctx context.Context, id uint, fn func(*domain.Product)) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.NewNotFoundError("product", id)
	}
	fn(&p)
	s.products[id] = p
	return nil
}

func (s *MemoryProductRepository) filter(ctx context.Context, keep func(*domain.Product) bool) ([]domain.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Product{}
	for _, p := range s.products {
		if keep(&p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryCategoryRepository is an in-memory CategoryRepository. Put is used
// to seed it since categories are administered elsewhere.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories domain.CategoryArena
}

func NewMemoryCategoryRepository(categories ...domain.Category) *MemoryCategoryRepository {
	return &MemoryCategoryRepository{categories: domain.NewCategoryArena(categories)}
}

var _ domain.CategoryRepository = (*MemoryCategoryRepository)(nil)

func (s *MemoryCategoryRepository) Put(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *MemoryCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.Lookup(id)
}

func (s *MemoryCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryReviewRepository is an in-memory ReviewRepository with the same
// order-item uniqueness as the SQL index.
type MemoryReviewRepository struct {
	mu          sync.RWMutex
	nextID      uint
	reviews     map[uint]domain.Review
	byOrderItem map[uint]uint
}

func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{
		reviews:     make(map[uint]domain.Review),
		byOrderItem: make(map[uint]uint),
	}
}

var _ domain.ReviewRepository = (*MemoryReviewRepository)(nil)

func (s *MemoryReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byOrderItem[review.OrderItemID]; exists {
		return domain.NewConflictError("review", "order item "+strconv.FormatUint(uint64(review.OrderItemID), 10))
	}
	s.nextID++
	review.ID = s.nextID
	s.reviews[review.ID] = *review
	s.byOrderItem[review.OrderItemID] = review.ID
	return nil
}

func (s *MemoryReviewRepository) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("review", id)
	}
	return &r, nil
}

func (s *MemoryReviewRepository) ExistsByOrderItemID(ctx context.Context, orderItemID uint) (bool, error) {
	if err := ctxErr(ctx); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byOrderItem[orderItemID]
	return ok, nil
}

func (s *MemoryReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reviews[review.ID]
	if !ok {
		return domain.NewNotFoundError("review", review.ID)
	}
	stored.Content = review.Content
	stored.Image = review.Image
	stored.Rating = review.Rating
	s.reviews[review.ID] = stored
	return nil
}

func (s *MemoryReviewRepository) Delete(ctx context.Context, id uint) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return domain.NewNotFoundError("review", id)
	}
	delete(s.reviews, id)
	delete(s.byOrderItem, r.OrderItemID)
	return nil
}

func (s *MemoryReviewRepository) FindByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	return s.filter(ctx, func(r *domain.Review) bool { return r.ProductID == productID })
}

func (s *MemoryReviewRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	return s.filter(ctx, func(r *domain.Review) bool { return r.UserID == userID })
}

func (s *MemoryReviewRepository) FindOrderItemIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	reviews, err := s.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.OrderItemID)
	}
	return ids, nil
}

func (s *MemoryReviewRepository) filter(ctx context.Context, keep func(*domain.Review) bool) ([]domain.Review, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Review{}
	for _, r := range s.reviews {
		if keep(&r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
