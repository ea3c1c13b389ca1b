package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusOpen       MatchStatus = "open"
	MatchStatusHandedOver MatchStatus = "handed_over"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

// CloseableTo reports whether s is a valid close target.
func (s MatchStatus) CloseableTo() bool {
	return s == MatchStatusHandedOver || s == MatchStatusCancelled
}

// Match is the durable record of a verified claim. The unique pair index
// is the backstop invariant: a second match for an already-matched pair
// fails on the constraint instead of silently succeeding.
type Match struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	LostReportID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair" json:"lost_report_id"`
	LostReport     *Report       `gorm:"foreignKey:LostReportID;constraint:OnDelete:RESTRICT" json:"lost_report,omitempty"`
	FoundReportID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair" json:"found_report_id"`
	FoundReport    *Report       `gorm:"foreignKey:FoundReportID;constraint:OnDelete:RESTRICT" json:"found_report,omitempty"`
	Status         MatchStatus   `gorm:"size:15;not null" json:"status"`
	SafeLocationID *uuid.UUID    `gorm:"type:uuid" json:"safe_location_id,omitempty"`
	SafeLocation   *SafeLocation `gorm:"foreignKey:SafeLocationID" json:"safe_location,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	ClosedAt       *time.Time    `json:"closed_at,omitempty"`
}
