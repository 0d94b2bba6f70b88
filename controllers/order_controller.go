package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/services"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(svc services.OrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// CreateOrder handles POST /api/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.orderService.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/:id and GET /api/admin/orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := oc.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrderByNumber handles GET /api/orders/number/:orderNumber
func (oc *OrderController) GetOrderByNumber(c *gin.Context) {
	order, err := oc.orderService.GetOrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetCustomerOrders handles GET /api/orders/customer/:customerId
func (oc *OrderController) GetCustomerOrders(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	orders, err := oc.orderService.GetOrdersByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersByStatus handles GET /api/orders/status/:status
func (oc *OrderController) GetOrdersByStatus(c *gin.Context) {
	orders, err := oc.orderService.GetOrdersByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus handles PUT /api/orders/:id/status?status=X
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := oc.orderService.UpdateOrderStatus(c.Request.Context(), id, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /api/admin/orders?page=&limit=
func (oc *OrderController) ListOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	result, err := oc.orderService.GetAllOrders(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateOrder handles PUT /api/admin/orders/:id
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.orderService.UpdateOrder(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, withDefaultCode(err, "ORDER_UPDATE_FAILED"))
		return
	}
	c.JSON(http.StatusOK, order)
}
