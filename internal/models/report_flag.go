package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportFlagStatus string

const (
	ReportFlagStatusOpen     ReportFlagStatus = "open"
	ReportFlagStatusReviewed ReportFlagStatus = "reviewed"
)

// ReportFlag is a user complaint about a report, reviewed by admins.
type ReportFlag struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"report_id"`
	Report          *Report          `gorm:"foreignKey:ReportID" json:"-"`
	CreatedByUserID uuid.UUID        `gorm:"type:uuid;not null" json:"created_by_user_id"`
	Reason          string           `gorm:"size:500;not null" json:"reason"`
	Status          ReportFlagStatus `gorm:"size:10;not null" json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}
