package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalCustomers int64           `json:"totalCustomers"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalProducts  int64           `json:"totalProducts"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	DailySales     decimal.Decimal `json:"dailySales"`
	DailyOrders    int64           `json:"dailyOrders"`
}

type TopSpender struct {
	Rank         int             `json:"rank" gorm:"-"`
	CustomerID   uuid.UUID       `json:"customerId"`
	CustomerName string          `json:"customerName"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
}

type CategorySales struct {
	Category string `json:"category"`
	Sales    int64  `json:"sales"`
}
