package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/middleware"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/services"
)

type ProductController struct {
	productService services.ProductService
}

func NewProductController(svc services.ProductService) *ProductController {
	return &ProductController{productService: svc}
}

func (pc *ProductController) list(c *gin.Context, products []models.ProductResponse, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProducts handles GET /api/products
func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.productService.ListActive(c.Request.Context())
	pc.list(c, products, err)
}

// GetFeatured handles GET /api/products/featured
func (pc *ProductController) GetFeatured(c *gin.Context) {
	products, err := pc.productService.ListFeatured(c.Request.Context())
	pc.list(c, products, err)
}

// GetLatest handles GET /api/products/latest?limit=N
func (pc *ProductController) GetLatest(c *gin.Context) {
	limit := services.DefaultLatestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperrors.Validation("limit must be an integer"))
			return
		}
		limit = n
	}
	products, err := pc.productService.ListLatest(c.Request.Context(), limit)
	pc.list(c, products, err)
}

// GetByCategory handles GET /api/products/category/:categoryId
func (pc *ProductController) GetByCategory(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "categoryId")
	if !ok {
		return
	}
	products, err := pc.productService.ListByCategory(c.Request.Context(), categoryID)
	pc.list(c, products, err)
}

// GetByGender handles GET /api/products/gender/:gender
func (pc *ProductController) GetByGender(c *gin.Context) {
	products, err := pc.productService.ListByGender(c.Request.Context(), c.Param("gender"))
	pc.list(c, products, err)
}

// Search handles GET /api/products/search?q=
func (pc *ProductController) Search(c *gin.Context) {
	products, err := pc.productService.Search(c.Request.Context(), c.Query("q"))
	pc.list(c, products, err)
}

// GetProduct handles GET /api/products/:id
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// AdminListProducts handles GET /api/admin/products, inactive products included.
func (pc *ProductController) AdminListProducts(c *gin.Context) {
	products, err := pc.productService.ListAll(c.Request.Context())
	pc.list(c, products, err)
}

// CreateProduct handles POST /api/admin/products
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := pc.productService.CreateProduct(c.Request.Context(), &req, c.GetString(middleware.AdminUsernameKey))
	if err != nil {
		respondError(c, withDefaultCode(err, "PRODUCT_CREATE_FAILED"))
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/:id
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := pc.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, withDefaultCode(err, "PRODUCT_UPDATE_FAILED"))
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/:id
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, withDefaultCode(err, "PRODUCT_DELETE_FAILED"))
		return
	}
	c.Status(http.StatusNoContent)
}

// SetActive handles PATCH /api/admin/products/:id/active
func (pc *ProductController) SetActive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := pc.productService.SetActive(c.Request.Context(), id, *req.IsActive)
	pc.single(c, product, err)
}

// SetFeatured handles PATCH /api/admin/products/:id/featured
func (pc *ProductController) SetFeatured(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := pc.productService.SetFeatured(c.Request.Context(), id, *req.IsFeatured)
	pc.single(c, product, err)
}

// SetStock handles PATCH /api/admin/products/:id/stock
func (pc *ProductController) SetStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := pc.productService.SetStock(c.Request.Context(), id, *req.StockQuantity)
	pc.single(c, product, err)
}

func (pc *ProductController) single(c *gin.Context, product *models.ProductResponse, err error) {
	if err != nil {
		respondError(c, withDefaultCode(err, "PRODUCT_UPDATE_FAILED"))
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateImageUploadURL handles POST /api/admin/products/image-upload-url
func (pc *ProductController) CreateImageUploadURL(c *gin.Context) {
	var req models.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	upload, err := pc.productService.CreateImageUploadURL(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// withDefaultCode tags err with code unless it already carries one.
func withDefaultCode(err error, code string) error {
	appErr := apperrors.As(err)
	if appErr.ErrorCode != "" {
		return appErr
	}
	return appErr.WithCode(code)
}
