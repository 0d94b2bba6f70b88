package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yashrajoria/atelier-backend/models"
	"gorm.io/gorm"
)

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	CategoryID   *uuid.UUID
	Gender       string
	NameContains string
	Limit        int
}

// ProductRepository defines data-access operations for the catalog.
type ProductRepository interface {
	Find(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// Find lists products newest first.
func (r *GormProductRepository) Find(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Preload("Category")

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", strings.ToUpper(filter.Gender))
	}
	if filter.NameContains != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(filter.NameContains))+"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Create(product).Error
}

func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Save(product).Error
}

// UpdateFields writes only the given columns and returns
// gorm.ErrRecordNotFound when no row has the id.
func (r *GormProductRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
