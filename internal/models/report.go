package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportKind string

const (
	ReportKindLost  ReportKind = "lost"
	ReportKindFound ReportKind = "found"
)

type ReportStatus string

const (
	ReportStatusActive  ReportStatus = "active"
	ReportStatusMatched ReportStatus = "matched"
	ReportStatusClosed  ReportStatus = "closed"
	ReportStatusRemoved ReportStatus = "removed"
)

// Terminal reports never accept new claims.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusClosed || s == ReportStatusRemoved
}

// Report is a lost or found plate submission. Only the masked plate and a
// one-way lookup hash are persisted; the full plate is never stored.
type Report struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Kind            ReportKind   `gorm:"size:10;not null;index" json:"kind"`
	PlateMasked     string       `gorm:"size:12;not null;index" json:"plate_masked"`
	PlateLookupHash *string      `gorm:"size:64;index" json:"-"`
	City            string       `gorm:"size:100;not null" json:"city"`
	Neighborhood    *string      `gorm:"size:100" json:"neighborhood,omitempty"`
	EventAt         time.Time    `gorm:"not null" json:"event_at"`
	Description     *string      `gorm:"type:text" json:"description,omitempty"`
	PhotoURL        *string      `gorm:"size:500" json:"photo_url,omitempty"`
	Status          ReportStatus `gorm:"size:10;not null;index" json:"status"`
	CreatedByUserID uuid.UUID    `gorm:"type:uuid;not null;index" json:"created_by_user_id"`
	CreatedByUser   *User        `gorm:"foreignKey:CreatedByUserID" json:"-"`
	CreatedAt       time.Time    `json:"created_at"`
	ClosedAt        *time.Time   `json:"closed_at,omitempty"`
	RemovedAt       *time.Time   `json:"removed_at,omitempty"`
}
