package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Name          string          `gorm:"type:varchar(200);not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	SKU           string          `gorm:"column:sku;type:varchar(64);uniqueIndex;not null" json:"sku"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"costPrice"`
	StockQuantity int             `gorm:"not null" json:"stockQuantity"`
	Size          string          `gorm:"type:varchar(20)" json:"size"`
	Color         string          `gorm:"type:varchar(50)" json:"color"`
	Gender        string          `gorm:"type:varchar(20);index" json:"gender"`
	ImageURL      string          `gorm:"column:image_url;type:text" json:"imageUrl"`
	IsActive      bool            `gorm:"not null;index" json:"isActive"`
	IsFeatured    bool            `gorm:"not null" json:"isFeatured"`
	CreatedBy     string          `gorm:"type:varchar(100)" json:"createdBy"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ProductResponse is the product as served to clients, with its category name.
type ProductResponse struct {
	Product
	CategoryName string `json:"categoryName,omitempty"`
}

func NewProductResponse(p *Product) ProductResponse {
	resp := ProductResponse{Product: *p}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

func NewProductResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

// CreateProductRequest omitted optional fields take their defaults: stock 0,
// inactive, not featured.
type CreateProductRequest struct {
	CategoryID    uuid.UUID        `json:"categoryId" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	SKU           string           `json:"sku" binding:"required"`
	Price         decimal.Decimal  `json:"price" binding:"gte=0"`
	CostPrice     *decimal.Decimal `json:"costPrice" binding:"omitempty,gte=0"`
	StockQuantity *int             `json:"stockQuantity" binding:"omitempty,gte=0"`
	Size          string           `json:"size"`
	Color         string           `json:"color"`
	Gender        string           `json:"gender"`
	ImageURL      string           `json:"imageUrl"`
	IsActive      *bool            `json:"isActive"`
	IsFeatured    *bool            `json:"isFeatured"`
}

// UpdateProductRequest is a partial update: nil fields are left untouched.
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID       `json:"categoryId"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	SKU           *string          `json:"sku"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,gte=0"`
	CostPrice     *decimal.Decimal `json:"costPrice" binding:"omitempty,gte=0"`
	StockQuantity *int             `json:"stockQuantity" binding:"omitempty,gte=0"`
	Size          *string          `json:"size"`
	Color         *string          `json:"color"`
	Gender        *string          `json:"gender"`
	ImageURL      *string          `json:"imageUrl"`
	IsActive      *bool            `json:"isActive"`
	IsFeatured    *bool            `json:"isFeatured"`
}

// Apply copies every non-nil field onto p.
func (r *UpdateProductRequest) Apply(p *Product) {
	if r.CategoryID != nil && *r.CategoryID != p.CategoryID {
		p.CategoryID = *r.CategoryID
		p.Category = nil
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.SKU != nil {
		p.SKU = *r.SKU
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.CostPrice != nil {
		p.CostPrice = *r.CostPrice
	}
	if r.StockQuantity != nil {
		p.StockQuantity = *r.StockQuantity
	}
	if r.Size != nil {
		p.Size = *r.Size
	}
	if r.Color != nil {
		p.Color = *r.Color
	}
	if r.Gender != nil {
		p.Gender = *r.Gender
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.IsFeatured != nil {
		p.IsFeatured = *r.IsFeatured
	}
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type SetFeaturedRequest struct {
	IsFeatured *bool `json:"isFeatured" binding:"required"`
}

type SetStockRequest struct {
	StockQuantity *int `json:"stockQuantity" binding:"required,gte=0"`
}

type ImageUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}
