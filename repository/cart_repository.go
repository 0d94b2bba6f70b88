package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yashrajoria/atelier-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository persists carts and their lines.
type CartRepository interface {
	GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	UpdateTotals(ctx context.Context, cart *models.Cart) error
}

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) findBySessionID(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("session_id = ?", sessionID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate returns the session's cart, creating an empty one on first
// access. Two requests racing to create the same cart both end up with the
// row that won.
func (r *GormCartRepository) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := r.findBySessionID(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &models.Cart{SessionID: sessionID, Items: []models.CartItem{}}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "session_id"}}, DoNothing: true}).
		Create(cart).Error; err != nil {
		return nil, err
	}
	if cart.ID == uuid.Nil {
		return r.findBySessionID(ctx, sessionID)
	}
	return cart, nil
}

// SaveItem inserts or updates a single cart line.
func (r *GormCartRepository) SaveItem(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		return r.db.WithContext(ctx).Create(item).Error
	}
	return r.db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"quantity":    item.Quantity,
		"total_price": item.TotalPrice,
	}).Error
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return clearCart(r.db.WithContext(ctx), cartID)
}

func (r *GormCartRepository) UpdateTotals(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"total_price": cart.TotalPrice,
		"item_count":  cart.ItemCount,
	}).Error
}

// clearCart removes every line and zeroes the derived totals. Callers wanting
// atomicity pass a transaction.
func clearCart(db *gorm.DB, cartID uuid.UUID) error {
	if err := db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"total_price": 0,
		"item_count":  0,
	}).Error
}
