package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/atelier-backend/cache"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	aws_pkg "github.com/yashrajoria/atelier-backend/pkg/aws"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultLatestLimit = 8
	MaxLatestLimit     = 50
)

// ImagePresigner issues upload URLs for product images.
type ImagePresigner interface {
	PresignPut(ctx context.Context, key, contentType string) (*aws_pkg.PresignedUpload, error)
}

// ProductService serves the public catalog and the admin product screens.
type ProductService interface {
	ListActive(ctx context.Context) ([]models.ProductResponse, error)
	ListFeatured(ctx context.Context) ([]models.ProductResponse, error)
	ListLatest(ctx context.Context, limit int) ([]models.ProductResponse, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ProductResponse, error)
	ListByGender(ctx context.Context, gender string) ([]models.ProductResponse, error)
	Search(ctx context.Context, query string) ([]models.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.ProductResponse, error)

	ListAll(ctx context.Context) ([]models.ProductResponse, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest, createdBy string) (*models.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.ProductResponse, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.ProductResponse, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.ProductResponse, error)
	CreateImageUploadURL(ctx context.Context, req *models.ImageUploadRequest) (*aws_pkg.PresignedUpload, error)
}

type productServiceImpl struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      *cache.ProductCache
	presigner  ImagePresigner
	metrics    Metrics
	logger     *zap.Logger
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	productCache *cache.ProductCache,
	presigner ImagePresigner,
	metrics Metrics,
	logger *zap.Logger,
) ProductService {
	return &productServiceImpl{
		products:   products,
		categories: categories,
		cache:      productCache,
		presigner:  presigner,
		metrics:    metrics,
		logger:     logger,
	}
}

func (s *productServiceImpl) ListActive(ctx context.Context) ([]models.ProductResponse, error) {
	return s.cachedList(ctx, cache.KeyActive, repository.ProductFilter{ActiveOnly: true})
}

func (s *productServiceImpl) ListFeatured(ctx context.Context) ([]models.ProductResponse, error) {
	return s.cachedList(ctx, cache.KeyFeatured, repository.ProductFilter{ActiveOnly: true, FeaturedOnly: true})
}

// ListLatest returns the newest active products. The limit defaults to 8 and
// is capped at 50.
func (s *productServiceImpl) ListLatest(ctx context.Context, limit int) ([]models.ProductResponse, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	if limit > MaxLatestLimit {
		limit = MaxLatestLimit
	}
	return s.cachedList(ctx, cache.KeyLatest(limit), repository.ProductFilter{ActiveOnly: true, Limit: limit})
}

func (s *productServiceImpl) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ProductResponse, error) {
	return s.cachedList(ctx, cache.KeyCategory(categoryID.String()),
		repository.ProductFilter{ActiveOnly: true, CategoryID: &categoryID})
}

func (s *productServiceImpl) ListByGender(ctx context.Context, gender string) ([]models.ProductResponse, error) {
	gender = strings.ToUpper(strings.TrimSpace(gender))
	return s.cachedList(ctx, cache.KeyGender(gender), repository.ProductFilter{ActiveOnly: true, Gender: gender})
}

// Search matches active products whose name contains query, ignoring case.
// Results are not cached.
func (s *productServiceImpl) Search(ctx context.Context, query string) ([]models.ProductResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("search query is required")
	}
	return s.list(ctx, repository.ProductFilter{ActiveOnly: true, NameContains: query})
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*models.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err, "Product not found")
	}
	resp := models.NewProductResponse(p)
	return &resp, nil
}

// ListAll includes inactive products.
func (s *productServiceImpl) ListAll(ctx context.Context) ([]models.ProductResponse, error) {
	return s.list(ctx, repository.ProductFilter{})
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.CreateProductRequest, createdBy string) (*models.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}
	category, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, apperrors.FromDB(err, "Category not found")
	}

	product := &models.Product{
		CategoryID:  category.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SKU:         strings.TrimSpace(req.SKU),
		Price:       req.Price,
		CostPrice:   decimal.Zero,
		Size:        req.Size,
		Color:       req.Color,
		Gender:      strings.ToUpper(req.Gender),
		ImageURL:    req.ImageURL,
		CreatedBy:   createdBy,
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if product.StockQuantity < 0 {
		return nil, apperrors.Validation("stock quantity must not be negative")
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, s.writeError(err, product.SKU, "Failed to create product")
	}
	product.Category = category

	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("sku", product.SKU))
	recordCount(s.metrics, s.logger, aws_pkg.MetricProductsCreated)
	s.invalidate(ctx)

	resp := models.NewProductResponse(product)
	return &resp, nil
}

// UpdateProduct overwrites only the fields present in req.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err, "Product not found")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, apperrors.Validation("stock quantity must not be negative")
	}

	var category *models.Category
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		category, err = s.categories.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, apperrors.FromDB(err, "Category not found")
		}
	}

	req.Apply(product)
	if req.Gender != nil {
		product.Gender = strings.ToUpper(product.Gender)
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, s.writeError(err, product.SKU, "Failed to update product")
	}
	if category != nil {
		product.Category = category
	}

	s.invalidate(ctx)
	resp := models.NewProductResponse(product)
	return &resp, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Product not found")
		}
		s.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return apperrors.Internal("Failed to delete product", err).WithCode("PRODUCT_DELETE_FAILED")
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	s.invalidate(ctx)
	return nil
}

func (s *productServiceImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.ProductResponse, error) {
	return s.patch(ctx, id, map[string]interface{}{"is_active": active})
}

func (s *productServiceImpl) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.ProductResponse, error) {
	return s.patch(ctx, id, map[string]interface{}{"is_featured": featured})
}

func (s *productServiceImpl) SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.ProductResponse, error) {
	if stock < 0 {
		return nil, apperrors.Validation("stock quantity must not be negative")
	}
	return s.patch(ctx, id, map[string]interface{}{"stock_quantity": stock})
}

func (s *productServiceImpl) patch(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.ProductResponse, error) {
	if err := s.products.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal("Failed to update product", err).WithCode("PRODUCT_UPDATE_FAILED")
	}
	s.invalidate(ctx)
	return s.GetProduct(ctx, id)
}

// CreateImageUploadURL presigns an S3 PUT for a new product image.
func (s *productServiceImpl) CreateImageUploadURL(ctx context.Context, req *models.ImageUploadRequest) (*aws_pkg.PresignedUpload, error) {
	if s.presigner == nil {
		return nil, apperrors.ErrServiceUnavailable.WithCode("IMAGE_UPLOAD_DISABLED")
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, apperrors.Validation("content type must be an image type")
	}
	key := fmt.Sprintf("products/%s%s", uuid.NewString(), strings.ToLower(path.Ext(req.FileName)))
	upload, err := s.presigner.PresignPut(ctx, key, req.ContentType)
	if err != nil {
		s.logger.Error("Failed to presign image upload", zap.String("key", key), zap.Error(err))
		return nil, apperrors.Internal("Failed to create upload URL", err)
	}
	return upload, nil
}

func (s *productServiceImpl) cachedList(ctx context.Context, key string, filter repository.ProductFilter) ([]models.ProductResponse, error) {
	cached, version, ok := s.cache.GetList(ctx, key)
	if ok {
		recordCount(s.metrics, s.logger, aws_pkg.MetricCacheHits)
		return cached, nil
	}
	if s.cache != nil {
		recordCount(s.metrics, s.logger, aws_pkg.MetricCacheMisses)
	}
	products, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cache.SetListAsync(version, key, products)
	return products, nil
}

func (s *productServiceImpl) list(ctx context.Context, filter repository.ProductFilter) ([]models.ProductResponse, error) {
	products, err := s.products.Find(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, apperrors.FromDB(err, "Product not found")
	}
	return models.NewProductResponses(products), nil
}

func (s *productServiceImpl) writeError(err error, sku, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(fmt.Sprintf("Product with SKU %s already exists", sku))
	}
	s.logger.Error(msg, zap.String("sku", sku), zap.Error(err))
	return apperrors.Internal(msg, err).WithCode("PRODUCT_SAVE_FAILED")
}

func (s *productServiceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("Failed to invalidate product cache", zap.Error(err))
	}
}
