package models

import (
	"time"

	"github.com/google/uuid"
)

// OtpRequest is a one-time login code, stored as a bcrypt hash with a
// persisted attempt counter so brute forcing survives process restarts.
type OtpRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	CodeHash  string    `gorm:"size:100;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}
