package models

import "github.com/google/uuid"

// SafeLocation is a pre-vetted physical handover point. Reference data:
// written only by seeding, read-only for the rest of the system.
type SafeLocation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Address      string    `gorm:"size:255;not null" json:"address"`
	City         string    `gorm:"size:100;not null;index" json:"city"`
	Neighborhood *string   `gorm:"size:100" json:"neighborhood,omitempty"`
	// No column default: a zero-valued bool would be silently dropped
	// from inserts and locations could never be created inactive.
	IsActive bool `gorm:"not null" json:"is_active"`
}
