package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusDelivered = "DELIVERED"
)

// IsTerminalSuccess reports whether status marks the order as fulfilled.
// Status values are free text, so the comparison ignores case.
func IsTerminalSuccess(status string) bool {
	return strings.EqualFold(status, OrderStatusCompleted) || strings.EqualFold(status, OrderStatusDelivered)
}

type Order struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber        string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"orderNumber"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index" json:"customerId"`
	CustomerEmail      string          `gorm:"type:varchar(255);index" json:"customerEmail"`
	CustomerName       string          `gorm:"type:varchar(255)" json:"customerName"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"taxAmount"`
	ShippingAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shippingAmount"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discountAmount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Status             string          `gorm:"type:varchar(30);not null;index" json:"status"`
	ShippingAddress    string          `gorm:"type:text" json:"shippingAddress"`
	ShippingCity       string          `gorm:"type:varchar(100)" json:"shippingCity"`
	ShippingPostalCode string          `gorm:"type:varchar(20)" json:"shippingPostalCode"`
	ShippingCountry    string          `gorm:"type:varchar(100)" json:"shippingCountry"`
	PaymentMethod      string          `gorm:"type:varchar(50)" json:"paymentMethod"`
	CustomerNotes      string          `gorm:"type:text" json:"customerNotes"`
	AdminNotes         string          `gorm:"type:text" json:"adminNotes"`
	CompletedAt        *time.Time      `json:"completedAt"`
	CreatedAt          time.Time       `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Items              []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// ApplyStatus sets the status and stamps CompletedAt the first time the order
// reaches COMPLETED or DELIVERED. It reports whether that stamp happened.
func (o *Order) ApplyStatus(status string, now time.Time) bool {
	o.Status = status
	if IsTerminalSuccess(status) && o.CompletedAt == nil {
		o.CompletedAt = &now
		return true
	}
	return false
}

// ItemCount is the sum of quantities over all order lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	ProductName string          `gorm:"type:varchar(200)" json:"productName"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
}

type CreateOrderRequest struct {
	SessionID          string     `json:"sessionId" binding:"required"`
	CustomerID         *uuid.UUID `json:"customerId"`
	CustomerEmail      string     `json:"customerEmail"`
	CustomerName       string     `json:"customerName"`
	ShippingAddress    string     `json:"shippingAddress"`
	ShippingCity       string     `json:"shippingCity"`
	ShippingPostalCode string     `json:"shippingPostalCode"`
	ShippingCountry    string     `json:"shippingCountry"`
	PaymentMethod      string     `json:"paymentMethod"`
	CustomerNotes      string     `json:"customerNotes"`
}

// UpdateOrderRequest is the admin edit of an order; nil fields are kept.
type UpdateOrderRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

// OrderListResponse is a page of orders with pagination metadata.
type OrderListResponse struct {
	Orders []Order  `json:"orders"`
	Meta   MetaData `json:"meta"`
}

type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

// OrderPlacedEvent is published after a successful checkout.
type OrderPlacedEvent struct {
	EventType   string          `json:"event_type"`
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  string          `json:"customer_id,omitempty"`
	Email       string          `json:"email,omitempty"`
	ItemCount   int             `json:"item_count"`
	Total       decimal.Decimal `json:"total"`
	Timestamp   time.Time       `json:"timestamp"`
}
