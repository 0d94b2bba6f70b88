package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/services"
)

type CategoryController struct {
	categoryService services.CategoryService
}

func NewCategoryController(svc services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: svc}
}

// GetCategories handles GET /api/categories
func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories, err := cc.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/:id
func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	category, err := cc.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory handles POST /api/admin/categories
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := cc.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
