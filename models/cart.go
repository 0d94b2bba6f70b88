package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID  string          `gorm:"type:varchar(128);uniqueIndex;not null" json:"sessionId"`
	Items      []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	ItemCount  int             `gorm:"not null" json:"itemCount"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CartItem snapshots the product's price and display fields when the product
// is first added. Later catalog changes do not reach existing lines.
type CartItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"-"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"productId"`
	ProductName string          `gorm:"type:varchar(200)" json:"productName"`
	ImageURL    string          `gorm:"column:image_url;type:text" json:"imageUrl"`
	Size        string          `gorm:"type:varchar(20)" json:"size"`
	Color       string          `gorm:"type:varchar(50)" json:"color"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"-"`
}

// SetQuantity updates the quantity and the line total derived from it.
func (i *CartItem) SetQuantity(q int) {
	i.Quantity = q
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(int64(q)))
}

// FindItem returns the line for productID, or nil.
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItem drops the line for productID and reports whether one existed.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Recalculate derives TotalPrice and ItemCount from every remaining line.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	count := 0
	for _, item := range c.Items {
		total = total.Add(item.TotalPrice)
		count += item.Quantity
	}
	c.TotalPrice = total
	c.ItemCount = count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
}
