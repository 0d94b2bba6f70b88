package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/atelier-backend/models"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	FindAll(ctx context.Context) ([]models.Activity, error)
	FindUnread(ctx context.Context) ([]models.Activity, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
}

type GormActivityRepository struct {
	db *gorm.DB
}

func NewGormActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

func (r *GormActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *GormActivityRepository) FindAll(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *GormActivityRepository) FindUnread(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.WithContext(ctx).
		Where("is_read = ?", false).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *GormActivityRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Activity{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

// MarkAsRead flips one activity; an unknown id is not an error.
func (r *GormActivityRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Activity{}).Where("id = ?", id).UpdateColumn("is_read", true).Error
}

func (r *GormActivityRepository) MarkAllAsRead(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Activity{}).Where("is_read = ?", false).UpdateColumn("is_read", true)
	return result.RowsAffected, result.Error
}
