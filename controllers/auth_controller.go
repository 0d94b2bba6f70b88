package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/atelier-backend/common/logger"
	"github.com/yashrajoria/atelier-backend/middleware"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/services"
	"go.uber.org/zap"
)

type AuthController struct {
	authService  services.AuthService
	adminService services.AdminAuthService
}

func NewAuthController(authService services.AuthService, adminService services.AdminAuthService) *AuthController {
	return &AuthController{authService: authService, adminService: adminService}
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AdminLogin handles POST /api/admin/auth/login
func (ac *AuthController) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ac.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info(c.Request.Context(), "Admin logged in", zap.String("username", resp.Username))
	c.JSON(http.StatusOK, resp)
}

// AdminLogout handles POST /api/admin/auth/logout
func (ac *AuthController) AdminLogout(c *gin.Context) {
	if err := ac.adminService.Logout(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// AdminValidate handles GET /api/admin/auth/validate
func (ac *AuthController) AdminValidate(c *gin.Context) {
	session, err := ac.adminService.Validate(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "username": session.Username, "expiresAt": session.ExpiresAt})
}
