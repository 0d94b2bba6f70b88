package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yashrajoria/atelier-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyCart is returned by CreateFromCart when the locked cart has no lines.
var ErrEmptyCart = errors.New("cart is empty")

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	CreateFromCart(ctx context.Context, sessionID string, build func(cart *models.Cart) *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	FindByStatus(ctx context.Context, status string) ([]models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	Update(ctx context.Context, order *models.Order) error
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateFromCart locks the session's cart, builds the order from the locked
// lines with build, inserts it and removes exactly those lines, all in one
// transaction. A concurrent checkout of the same cart waits for the lock and
// then sees it empty.
func (r *GormOrderRepository) CreateFromCart(ctx context.Context, sessionID string, build func(cart *models.Cart) *models.Order) (*models.Order, error) {
	var order *models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ?", cart.ID).
			Order("created_at ASC").
			Find(&cart.Items).Error; err != nil {
			return err
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		order = build(&cart)
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return removeLines(tx, &cart)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// removeLines deletes the given cart lines and recomputes the cart totals
// from whatever lines remain.
func removeLines(tx *gorm.DB, cart *models.Cart) error {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, line := range cart.Items {
		ids = append(ids, line.ID)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"total_price": gorm.Expr("(SELECT COALESCE(SUM(total_price), 0) FROM cart_items WHERE cart_id = ?)", cart.ID),
		"item_count":  gorm.Expr("(SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE cart_id = ?)", cart.ID),
	}).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus matches status case-insensitively.
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("UPPER(status) = UPPER(?)", status).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll retrieves all orders with pagination
func (r *GormOrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Update saves the order row only; placed items are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}
