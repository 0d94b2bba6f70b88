package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivitySignup         = "SIGNUP"
	ActivityOrderPlaced    = "ORDER_PLACED"
	ActivityOrderCompleted = "ORDER_COMPLETED"
)

type Activity struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type        string     `gorm:"column:activity_type;type:varchar(50);not null;index" json:"type"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	UserName    string     `gorm:"type:varchar(255)" json:"userName"`
	UserEmail   string     `gorm:"type:varchar(255)" json:"userEmail"`
	IsRead      bool       `gorm:"not null;index" json:"isRead"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
}

// ActivityResponse adds the display-only relative time.
type ActivityResponse struct {
	Activity
	TimeAgo string `json:"timeAgo"`
}

// ActivityEvent is an activity delivered from another system over SQS.
type ActivityEvent struct {
	EventType   string     `json:"event_type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	UserName    string     `json:"user_name"`
	UserEmail   string     `json:"user_email"`
}

type NotificationsResponse struct {
	Notifications []ActivityResponse `json:"notifications"`
	UnreadCount   int64              `json:"unreadCount"`
}
