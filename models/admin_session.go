package models

import "time"

// AdminSessionSlot is the primary key of the single admin session row.
const AdminSessionSlot = 1

// AdminSession holds the one valid admin token. Logging in replaces the row,
// which invalidates whatever token was there before.
type AdminSession struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	Username  string    `gorm:"type:varchar(100);not null" json:"username"`
	IssuedAt  time.Time `gorm:"not null" json:"issuedAt"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
}

func (s *AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
	Message   string    `json:"message"`
}
