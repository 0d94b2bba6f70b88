package repository

import (
	"context"

	"github.com/yashrajoria/atelier-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminSessionRepository stores the single admin session row.
type AdminSessionRepository interface {
	Replace(ctx context.Context, session *models.AdminSession) error
	Get(ctx context.Context) (*models.AdminSession, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
}

type GormAdminSessionRepository struct {
	db *gorm.DB
}

func NewGormAdminSessionRepository(db *gorm.DB) AdminSessionRepository {
	return &GormAdminSessionRepository{db: db}
}

// Replace upserts the session into the single slot. Concurrent logins race
// and the last writer wins.
func (r *GormAdminSessionRepository) Replace(ctx context.Context, session *models.AdminSession) error {
	session.ID = models.AdminSessionSlot
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "username", "issued_at", "expires_at"}),
		}).
		Create(session).Error
}

func (r *GormAdminSessionRepository) Get(ctx context.Context) (*models.AdminSession, error) {
	var s models.AdminSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", models.AdminSessionSlot).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteByToken clears the slot only if it still holds token.
func (r *GormAdminSessionRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND token = ?", models.AdminSessionSlot, token).
		Delete(&models.AdminSession{})
	return result.RowsAffected > 0, result.Error
}
