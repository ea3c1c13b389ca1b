package models

import (
	"time"

	"github.com/google/uuid"
)

// LostSecret is the ownership proof for a lost report: a bcrypt hash of
// the short secret the owner supplied at submission (the salt lives
// inside the hash). One per lost report, immutable, never returned.
type LostSecret struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"report_id"`
	Report     *Report   `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	SecretHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt  time.Time `json:"-"`
}
