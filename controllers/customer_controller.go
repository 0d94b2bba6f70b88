package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/services"
)

type CustomerController struct {
	customerService services.CustomerService
}

func NewCustomerController(svc services.CustomerService) *CustomerController {
	return &CustomerController{customerService: svc}
}

// ListCustomers handles GET /api/admin/customers
func (cc *CustomerController) ListCustomers(c *gin.Context) {
	customers, err := cc.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCounts handles GET /api/admin/customers/counts
func (cc *CustomerController) GetCounts(c *gin.Context) {
	counts, err := cc.customerService.GetCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// GetCustomer handles GET /api/admin/customers/:id
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := cc.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /api/admin/customers/:id
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := cc.customerService.UpdateCustomer(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateStatus handles PATCH /api/admin/customers/:id/status
func (cc *CustomerController) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := cc.customerService.SetStatus(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
