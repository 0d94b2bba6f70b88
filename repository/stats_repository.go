package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yashrajoria/atelier-backend/models"
	"gorm.io/gorm"
)

// StatsRepository runs the read-only aggregate queries behind the dashboard
// and sales reports. A nil since means all time.
type StatsRepository interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountActiveProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context, since *time.Time) (int64, error)
	SumRevenue(ctx context.Context, since *time.Time) (decimal.Decimal, error)
	TopSpenders(ctx context.Context, since *time.Time, limit int) ([]models.TopSpender, error)
	QuantityByCategory(ctx context.Context, since time.Time) ([]models.CategorySales, error)
}

type GormStatsRepository struct {
	db *gorm.DB
}

func NewGormStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&n).Error
	return n, err
}

func (r *GormStatsRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *GormStatsRepository) CountOrders(ctx context.Context, since *time.Time) (int64, error) {
	var n int64
	err := ordersSince(r.db.WithContext(ctx).Model(&models.Order{}), since).Count(&n).Error
	return n, err
}

func (r *GormStatsRepository) SumRevenue(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := ordersSince(r.db.WithContext(ctx).Model(&models.Order{}), since).
		Select("COALESCE(SUM(total_amount), 0)")
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// TopSpenders ranks customers by the sum of their order totals, highest first.
func (r *GormStatsRepository) TopSpenders(ctx context.Context, since *time.Time, limit int) ([]models.TopSpender, error) {
	query := r.db.WithContext(ctx).
		Table("orders").
		Select("users.id AS customer_id, users.username AS customer_name, SUM(orders.total_amount) AS total_spent").
		Joins("JOIN users ON users.id = orders.customer_id")
	if since != nil {
		query = query.Where("orders.created_at >= ?", *since)
	}

	var spenders []models.TopSpender
	if err := query.
		Group("users.id, users.username").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&spenders).Error; err != nil {
		return nil, err
	}
	return spenders, nil
}

// QuantityByCategory sums order item quantities per category name for orders
// placed at or after since. Categories without sales are absent.
func (r *GormStatsRepository) QuantityByCategory(ctx context.Context, since time.Time) ([]models.CategorySales, error) {
	var rows []models.CategorySales
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("categories.name AS category, COALESCE(SUM(order_items.quantity), 0) AS sales").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("orders.created_at >= ?", since).
		Group("categories.name").
		Scan(&rows).Error
	return rows, err
}

func ordersSince(query *gorm.DB, since *time.Time) *gorm.DB {
	if since != nil {
		return query.Where("created_at >= ?", *since)
	}
	return query
}
