package services

import (
	"errors"
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrMatchClosed         = errors.New("match is already closed")
	ErrInvalidMatchStatus  = errors.New("invalid match close status")
	ErrSafeLocationInvalid = errors.New("safe location does not exist or is inactive")
)

type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{db: db}
}

// matchOwnerIDs is the authorization projection for a match: just the
// two report owner ids, fetched without loading the aggregates. Shared
// with the message service.
func matchOwnerIDs(db *gorm.DB, matchID uuid.UUID) (lostOwner, foundOwner uuid.UUID, err error) {
	var row struct {
		LostOwner  uuid.UUID
		FoundOwner uuid.UUID
	}
	err = db.Table("matches").
		Select("lr.created_by_user_id AS lost_owner, fr.created_by_user_id AS found_owner").
		Joins("JOIN reports lr ON lr.id = matches.lost_report_id").
		Joins("JOIN reports fr ON fr.id = matches.found_report_id").
		Where("matches.id = ?", matchID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, ErrMatchNotFound
		}
		return uuid.Nil, uuid.Nil, err
	}
	return row.LostOwner, row.FoundOwner, nil
}

// requireOwner distinguishes absence from denial; reads that must not
// leak existence conflate the two at the call site.
func requireOwner(db *gorm.DB, matchID, userID uuid.UUID) error {
	lostOwner, foundOwner, err := matchOwnerIDs(db, matchID)
	if err != nil {
		return err
	}
	if userID != lostOwner && userID != foundOwner {
		return ErrAccessDenied
	}
	return nil
}

func (s *MatchService) GetMine(userID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	err := s.db.
		Preload("LostReport").
		Preload("FoundReport").
		Preload("SafeLocation").
		Joins("JOIN reports lr ON lr.id = matches.lost_report_id").
		Joins("JOIN reports fr ON fr.id = matches.found_report_id").
		Where("lr.created_by_user_id = ? OR fr.created_by_user_id = ?", userID, userID).
		Order("matches.created_at DESC").
		Find(&matches).Error
	return matches, err
}

// GetByID returns ErrMatchNotFound for both a missing match and a caller
// who owns neither report, so existence cannot be probed.
func (s *MatchService) GetByID(matchID, userID uuid.UUID) (*models.Match, error) {
	if err := requireOwner(s.db, matchID, userID); err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	var match models.Match
	err := s.db.
		Preload("LostReport").
		Preload("FoundReport").
		Preload("SafeLocation").
		First(&match, "id = ?", matchID).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// SetSafeLocation points the match at a vetted handover location. The
// location must exist and be active.
func (s *MatchService) SetSafeLocation(matchID, safeLocationID, userID uuid.UUID) error {
	if err := requireOwner(s.db, matchID, userID); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.SafeLocation{}).
		Where("id = ? AND is_active = ?", safeLocationID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrSafeLocationInvalid
	}

	return s.db.Model(&models.Match{}).
		Where("id = ?", matchID).
		Update("safe_location_id", safeLocationID).Error
}

// Close moves an open match to handed_over or cancelled. Handover
// cascades: both reports close with their own timestamp. Cancelling
// leaves them matched; the claim is spent either way.
func (s *MatchService) Close(matchID uuid.UUID, status models.MatchStatus, userID uuid.UUID) error {
	if !status.CloseableTo() {
		return ErrInvalidMatchStatus
	}
	if err := requireOwner(s.db, matchID, userID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
			return err
		}
		if match.Status != models.MatchStatusOpen {
			return ErrMatchClosed
		}

		now := time.Now().UTC()
		if err := tx.Model(&match).Updates(map[string]interface{}{
			"status":    status,
			"closed_at": now,
		}).Error; err != nil {
			return err
		}

		if status == models.MatchStatusHandedOver {
			return tx.Model(&models.Report{}).
				Where("id IN ?", []uuid.UUID{match.LostReportID, match.FoundReportID}).
				Updates(map[string]interface{}{
					"status":    models.ReportStatusClosed,
					"closed_at": now,
				}).Error
		}
		return nil
	})
}

func (s *MatchService) ListSafeLocations() ([]models.SafeLocation, error) {
	var locations []models.SafeLocation
	err := s.db.Where("is_active = ?", true).Order("city, name").Find(&locations).Error
	return locations, err
}
