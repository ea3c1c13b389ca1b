package services

import (
	"errors"
	"strings"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxMessageLength = 2000

var ErrEmptyMessage = errors.New("message body must not be empty")

// MessageService is the match-scoped chat between the two report owners.
// Access control runs on the owner-id projection before any message row
// is touched.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// List returns the thread in chat order (ascending), unlike match
// listings which are newest-first.
func (s *MessageService) List(matchID, userID uuid.UUID) ([]models.Message, error) {
	if err := requireOwner(s.db, matchID, userID); err != nil {
		return nil, err
	}

	var messages []models.Message
	err := s.db.
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (s *MessageService) Send(matchID, userID uuid.UUID, body string) (*models.Message, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if len(trimmed) > maxMessageLength {
		return nil, errors.New("message body must be under 2000 characters")
	}

	if err := requireOwner(s.db, matchID, userID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ID:           uuid.New(),
		MatchID:      matchID,
		SenderUserID: userID,
		Body:         trimmed,
	}
	if err := s.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
