package models

import (
	"time"

	"github.com/google/uuid"
)

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusVerified ClaimStatus = "verified"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// Claim records a claimant's verification attempts against a
// (lost, found) report pair. The pair is unique: repeated attempts
// upsert this row rather than creating new ones, and AttemptsCount is
// the persisted brute-force counter.
type Claim struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	LostReportID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_claims_pair" json:"lost_report_id"`
	LostReport      *Report     `gorm:"foreignKey:LostReportID;constraint:OnDelete:RESTRICT" json:"-"`
	FoundReportID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_claims_pair" json:"found_report_id"`
	FoundReport     *Report     `gorm:"foreignKey:FoundReportID;constraint:OnDelete:RESTRICT" json:"-"`
	Status          ClaimStatus `gorm:"size:10;not null" json:"status"`
	AttemptsCount   int         `gorm:"not null;default:0" json:"attempts_count"`
	CreatedByUserID uuid.UUID   `gorm:"type:uuid;not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time   `json:"created_at"`
	VerifiedAt      *time.Time  `json:"verified_at,omitempty"`
}
