package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tair/catalog-service/internal/product/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate creates the product, category and review tables.
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.Review{})
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("product_id IN ?", ids)
	})
}

// counterColumns are maintained by IncrementSales and UpdateReviewStats only.
var counterColumns = []string{"sales_count", "review_count", "average_rating"}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Select("*").
		Omit(append([]string{"product_id"}, counterColumns...)...).
		Updates(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("product", product.ID)
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("product", id)
	}
	return nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q })
}

func (r *GormProductRepository) FindByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

func (r *GormProductRepository) FindByCategoryAndStatus(ctx context.Context, categoryID uint, status domain.ProductStatus) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ? AND status = ?", categoryID, status)
	})
}

func (r *GormProductRepository) FindByNameAndStatus(ctx context.Context, keyword string, status domain.ProductStatus) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("name ILIKE ? AND status = ?", containsPattern(keyword), status)
	})
}

func (r *GormProductRepository) FindByCategoryNameAndStatus(ctx context.Context, categoryID uint, keyword string, status domain.ProductStatus) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ? AND name ILIKE ? AND status = ?", categoryID, containsPattern(keyword), status)
	})
}

func (r *GormProductRepository) FindByOwner(ctx context.Context, userID uint) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID)
	})
}

func (r *GormProductRepository) FindByOwnerAndCategory(ctx context.Context, userID, categoryID uint) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ? AND category_id = ?", userID, categoryID)
	})
}

func (r *GormProductRepository) FindByOwnerAndName(ctx context.Context, userID uint, keyword string) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ? AND name ILIKE ?", userID, containsPattern(keyword))
	})
}

func (r *GormProductRepository) FindByOwnerCategoryAndName(ctx context.Context, userID, categoryID uint, keyword string) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ? AND category_id = ? AND name ILIKE ?", userID, categoryID, containsPattern(keyword))
	})
}

// Search applies every non-nil criterion as a conjunction.
func (r *GormProductRepository) Search(ctx context.Context, c domain.SearchCriteria) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		if c.Status != nil {
			q = q.Where("status = ?", *c.Status)
		}
		if c.Keyword != "" {
			q = q.Where("name ILIKE ?", containsPattern(c.Keyword))
		}
		if c.CategoryID != nil {
			q = q.Where("category_id = ?", *c.CategoryID)
		}
		if c.MinPrice != nil {
			q = q.Where("price >= ?", *c.MinPrice)
		}
		if c.MaxPrice != nil {
			q = q.Where("price <= ?", *c.MaxPrice)
		}
		if c.MinRating != nil {
			q = q.Where("average_rating >= ?", *c.MinRating)
		}
		return q
	})
}

func (r *GormProductRepository) FindNamesByPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("name ILIKE ?", escapeLike(prefix)+"%").
		Order("product_id").
		Limit(limit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to autocomplete names: %w", err)
	}
	return names, nil
}

func (r *GormProductRepository) IncrementSales(ctx context.Context, id uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("product_id = ?", id).
		Update("sales_count", gorm.Expr("sales_count + ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to increment sales of product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("product", id)
	}
	return nil
}

func (r *GormProductRepository) UpdateReviewStats(ctx context.Context, id uint, count int, average float64) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("product_id = ?", id).
		Updates(map[string]interface{}{"review_count": count, "average_rating": average}).Error
	if err != nil {
		return fmt.Errorf("failed to update review stats of product %d: %w", id, err)
	}
	return nil
}

func (r *GormProductRepository) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := scope(r.db.WithContext(ctx)).Order("product_id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func containsPattern(keyword string) string {
	return "%" + escapeLike(keyword) + "%"
}

var _ domain.ProductRepository = (*GormProductRepository)(nil)
