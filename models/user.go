package models

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes storefront customers from back-office staff.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleStaff
}

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Role       Role       `gorm:"type:varchar(20);not null;index" json:"userType"`
	Username   string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email      string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	FullName   string     `gorm:"type:varchar(255)" json:"fullName"`
	Phone      string     `gorm:"type:varchar(30)" json:"phone"`
	Address    string     `gorm:"type:text" json:"address"`
	City       string     `gorm:"type:varchar(100)" json:"city"`
	PostalCode string     `gorm:"type:varchar(20)" json:"postalCode"`
	Country    string     `gorm:"type:varchar(100)" json:"country"`
	IsActive   bool       `gorm:"not null" json:"isActive"`
	LastLogin  *time.Time `json:"lastLogin"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type LoginResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserType Role      `json:"userType"`
	Message  string    `json:"message"`
	Token    string    `json:"token,omitempty"`
}

// UpdateCustomerRequest is a partial update of a customer's profile.
type UpdateCustomerRequest struct {
	FullName   *string `json:"fullName"`
	Email      *string `json:"email"`
	Username   *string `json:"username"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
}

func (r *UpdateCustomerRequest) Apply(u *User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.FullName, r.FullName)
	set(&u.Email, r.Email)
	set(&u.Username, r.Username)
	set(&u.Phone, r.Phone)
	set(&u.Address, r.Address)
	set(&u.City, r.City)
	set(&u.PostalCode, r.PostalCode)
	set(&u.Country, r.Country)
}

type UpdateCustomerStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type CustomerCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// CustomerSignedUpEvent is published after a successful registration.
type CustomerSignedUpEvent struct {
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}
