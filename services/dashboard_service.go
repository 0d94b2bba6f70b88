package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	TopSpenderLimit = 3
)

// DashboardService aggregates the figures shown on the admin dashboard and
// the sales report.
type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
	GetTopSpenders(ctx context.Context) ([]models.TopSpender, error)
	GetSalesByCategory(ctx context.Context, period string) ([]models.CategorySales, error)
}

type dashboardServiceImpl struct {
	stats      repository.StatsRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardService(stats repository.StatsRepository, categories repository.CategoryRepository, logger *zap.Logger) DashboardService {
	return &dashboardServiceImpl{stats: stats, categories: categories, logger: logger, now: time.Now}
}

func (s *dashboardServiceImpl) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	today := startOfDay(s.now())
	var stats models.DashboardStats
	var err error

	if stats.TotalCustomers, err = s.stats.CountCustomers(ctx); err != nil {
		return nil, s.dbError(err)
	}
	if stats.TotalProducts, err = s.stats.CountActiveProducts(ctx); err != nil {
		return nil, s.dbError(err)
	}
	if stats.TotalOrders, err = s.stats.CountOrders(ctx, nil); err != nil {
		return nil, s.dbError(err)
	}
	if stats.TotalRevenue, err = s.stats.SumRevenue(ctx, nil); err != nil {
		return nil, s.dbError(err)
	}
	if stats.DailySales, err = s.stats.SumRevenue(ctx, &today); err != nil {
		return nil, s.dbError(err)
	}
	if stats.DailyOrders, err = s.stats.CountOrders(ctx, &today); err != nil {
		return nil, s.dbError(err)
	}
	return &stats, nil
}

// GetTopSpenders ranks today's biggest customers, or all-time ones when
// nobody has ordered today.
func (s *dashboardServiceImpl) GetTopSpenders(ctx context.Context) ([]models.TopSpender, error) {
	today := startOfDay(s.now())
	spenders, err := s.stats.TopSpenders(ctx, &today, TopSpenderLimit)
	if err != nil {
		return nil, s.dbError(err)
	}
	if len(spenders) == 0 {
		if spenders, err = s.stats.TopSpenders(ctx, nil, TopSpenderLimit); err != nil {
			return nil, s.dbError(err)
		}
	}
	for i := range spenders {
		spenders[i].Rank = i + 1
	}
	if spenders == nil {
		spenders = []models.TopSpender{}
	}
	return spenders, nil
}

// GetSalesByCategory sums units sold per category since the start of period.
// Every category is listed, with zero when it sold nothing.
func (s *dashboardServiceImpl) GetSalesByCategory(ctx context.Context, period string) ([]models.CategorySales, error) {
	since := PeriodStart(period, s.now())

	rows, err := s.stats.QuantityByCategory(ctx, since)
	if err != nil {
		return nil, s.dbError(err)
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, s.dbError(err)
	}

	sold := make(map[string]int64, len(rows))
	for _, r := range rows {
		sold[r.Category] = r.Sales
	}
	out := make([]models.CategorySales, 0, len(categories))
	for _, c := range categories {
		out = append(out, models.CategorySales{Category: c.Name, Sales: sold[c.Name]})
	}
	return out, nil
}

// PeriodStart is local midnight of today, of seven days ago or of one month
// ago. Unknown periods are treated as daily.
func PeriodStart(period string, now time.Time) time.Time {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case PeriodWeekly:
		return startOfDay(now.AddDate(0, 0, -7))
	case PeriodMonthly:
		return startOfDay(now.AddDate(0, -1, 0))
	default:
		return startOfDay(now)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *dashboardServiceImpl) dbError(err error) error {
	s.logger.Error("Dashboard query failed", zap.Error(err))
	return apperrors.FromDB(err, "No data found")
}
