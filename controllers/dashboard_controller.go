package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/atelier-backend/services"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(svc services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: svc}
}

// GetStats handles GET /api/admin/dashboard/stats
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetTopSpenders handles GET /api/admin/dashboard/top-spenders
func (dc *DashboardController) GetTopSpenders(c *gin.Context) {
	spenders, err := dc.dashboardService.GetTopSpenders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spenders)
}

// GetSalesByCategory handles GET /api/admin/sales/by-category?period=
func (dc *DashboardController) GetSalesByCategory(c *gin.Context) {
	period := c.DefaultQuery("period", services.PeriodMonthly)
	sales, err := dc.dashboardService.GetSalesByCategory(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
