package models

import (
	"time"

	"github.com/google/uuid"
)

// Message belongs to exactly one match and is visible only to the two
// report owners. Append-only: no edit, no delete.
type Message struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID      uuid.UUID `gorm:"type:uuid;not null;index" json:"match_id"`
	Match        *Match    `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"-"`
	SenderUserID uuid.UUID `gorm:"type:uuid;not null" json:"sender_user_id"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
