package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that can file reports, claim them and chat inside a
// match. Credential material never leaves this struct in JSON form.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash *string   `gorm:"size:100" json:"-"`
	FullName     *string   `gorm:"size:150" json:"full_name,omitempty"`
	Role         string    `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
