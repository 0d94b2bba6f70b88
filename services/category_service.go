package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
}

type categoryServiceImpl struct {
	repo   repository.CategoryRepository
	logger *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, logger: logger}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.FromDB(err, "Category not found")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *categoryServiceImpl) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err, "Category not found")
	}
	return c, nil
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}
	c := &models.Category{Name: name, Description: req.Description}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Category already exists")
		}
		s.logger.Error("Failed to create category", zap.String("name", name), zap.Error(err))
		return nil, apperrors.Internal("Failed to create category", err)
	}
	s.logger.Info("Category created", zap.String("category_id", c.ID.String()), zap.String("name", name))
	return c, nil
}
