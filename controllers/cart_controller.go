package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/services"
)

type CartController struct {
	cartService services.CartService
}

func NewCartController(svc services.CartService) *CartController {
	return &CartController{cartService: svc}
}

// GetCart handles GET /api/cart/:sessionId
func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := cc.cartService.GetCart(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddToCart handles POST /api/cart/:sessionId/add
func (cc *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := cc.cartService.AddToCart(c.Request.Context(), c.Param("sessionId"), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveFromCart handles DELETE /api/cart/:sessionId/remove/:productId
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	cart, err := cc.cartService.RemoveFromCart(c.Request.Context(), c.Param("sessionId"), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateCartItem handles PUT /api/cart/:sessionId/update/:productId?quantity=N
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		respondError(c, apperrors.Validation("quantity must be an integer"))
		return
	}

	cart, err := cc.cartService.UpdateCartItem(c.Request.Context(), c.Param("sessionId"), productID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart handles DELETE /api/cart/:sessionId/clear
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.cartService.ClearCart(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
