package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultClaimMaxAttempts = 5

var (
	ErrInvalidLostReport  = errors.New("invalid lost report")
	ErrInvalidFoundReport = errors.New("invalid found report")
	ErrAlreadyVerified    = errors.New("claim already verified")
	ErrTooManyAttempts    = errors.New("too many failed attempts for this claim")
	ErrIncorrectSecret    = errors.New("incorrect secret")
	ErrClaimConflict      = errors.New("concurrent claim attempt detected")
)

// ClaimService verifies ownership proofs against lost reports and, on
// success, creates the match that unlocks messaging and handover.
type ClaimService struct {
	db          *gorm.DB
	vault       SecretVault
	maxAttempts int
}

func NewClaimService(db *gorm.DB, maxAttempts int) *ClaimService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultClaimMaxAttempts
	}
	return &ClaimService{db: db, maxAttempts: maxAttempts}
}

// CreateClaim runs one verification attempt for the (lost, found) pair.
//
// The whole sequence is a single transaction. Attempt increments and the
// verified transition are compare-and-swap updates keyed on the row
// state read at the start, so two concurrent attempts for the same pair
// cannot both succeed or double-count; the loser gets ErrClaimConflict.
// The unique index on matches(lost_report_id, found_report_id) is the
// backstop if a second match is ever attempted for a verified pair.
func (s *ClaimService) CreateClaim(lostReportID, foundReportID uuid.UUID, secret string, claimantID uuid.UUID) (*models.Match, error) {
	var match *models.Match
	// A wrong secret must commit its attempt increment, so it cannot be
	// returned from inside the transaction closure (that would roll the
	// increment back). It is carried out and returned after commit.
	var failedAttempt error

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Precondition 1: lost report exists, is a lost report, belongs
		// to the claimant and still accepts claims.
		var lost models.Report
		if err := tx.First(&lost, "id = ?", lostReportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidLostReport
			}
			return err
		}
		if lost.Kind != models.ReportKindLost || lost.CreatedByUserID != claimantID || lost.Status.Terminal() {
			return ErrInvalidLostReport
		}

		// Precondition 2: found report exists and is a found report.
		var found models.Report
		if err := tx.First(&found, "id = ?", foundReportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidFoundReport
			}
			return err
		}
		if found.Kind != models.ReportKindFound || found.Status.Terminal() {
			return ErrInvalidFoundReport
		}

		// Precondition 3: a secret is configured for the lost report.
		if err := s.vault.Exists(tx, lost.ID); err != nil {
			return err
		}

		// Idempotent upsert on the pair. A duplicate-key error means a
		// concurrent request created the row first; reload and continue
		// with its state.
		claim, err := s.loadOrCreateClaim(tx, lostReportID, foundReportID, claimantID)
		if err != nil {
			return err
		}

		// Verified is checked before the cap so a verified pair always
		// reports ErrAlreadyVerified, even after failed attempts.
		if claim.Status == models.ClaimStatusVerified {
			return ErrAlreadyVerified
		}
		if claim.AttemptsCount >= s.maxAttempts {
			return ErrTooManyAttempts
		}

		ok, err := s.vault.Verify(tx, lost.ID, secret)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.recordFailedAttempt(tx, claim); err != nil {
				return err
			}
			failedAttempt = ErrIncorrectSecret
			return nil
		}

		m, err := s.verifyAndMatch(tx, claim, &lost, &found)
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	if failedAttempt != nil {
		return nil, failedAttempt
	}
	return match, nil
}

func (s *ClaimService) loadOrCreateClaim(tx *gorm.DB, lostReportID, foundReportID, claimantID uuid.UUID) (*models.Claim, error) {
	var claim models.Claim
	err := tx.First(&claim, "lost_report_id = ? AND found_report_id = ?", lostReportID, foundReportID).Error
	if err == nil {
		return &claim, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	claim = models.Claim{
		ID:              uuid.New(),
		LostReportID:    lostReportID,
		FoundReportID:   foundReportID,
		Status:          models.ClaimStatusPending,
		AttemptsCount:   0,
		CreatedByUserID: claimantID,
	}
	if err := tx.Create(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.First(&claim, "lost_report_id = ? AND found_report_id = ?", lostReportID, foundReportID).Error; err != nil {
				return nil, err
			}
			return &claim, nil
		}
		return nil, err
	}
	return &claim, nil
}

// recordFailedAttempt bumps the counter with a CAS on the count read at
// the start of the transaction. Reaching the cap flips the claim to
// rejected in the same update, so the terminal state lands exactly on
// the capping attempt. Returns nil when the attempt was recorded; the
// caller reports ErrIncorrectSecret after the commit.
func (s *ClaimService) recordFailedAttempt(tx *gorm.DB, claim *models.Claim) error {
	newCount := claim.AttemptsCount + 1
	updates := map[string]interface{}{"attempts_count": newCount}
	if newCount >= s.maxAttempts {
		updates["status"] = models.ClaimStatusRejected
	}

	result := tx.Model(&models.Claim{}).
		Where("id = ? AND attempts_count = ? AND status = ?", claim.ID, claim.AttemptsCount, models.ClaimStatusPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClaimConflict
	}
	return nil
}

// verifyAndMatch performs the four success mutations: claim verified,
// match created, both reports matched.
func (s *ClaimService) verifyAndMatch(tx *gorm.DB, claim *models.Claim, lost, found *models.Report) (*models.Match, error) {
	now := time.Now().UTC()

	result := tx.Model(&models.Claim{}).
		Where("id = ? AND attempts_count = ? AND status = ?", claim.ID, claim.AttemptsCount, models.ClaimStatusPending).
		Updates(map[string]interface{}{
			"status":      models.ClaimStatusVerified,
			"verified_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrClaimConflict
	}

	match := &models.Match{
		ID:            uuid.New(),
		LostReportID:  lost.ID,
		FoundReportID: found.ID,
		Status:        models.MatchStatusOpen,
	}
	if err := tx.Create(match).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("match already exists for pair %s/%s: %w", lost.ID, found.ID, err)
		}
		return nil, err
	}

	if err := tx.Model(&models.Report{}).
		Where("id IN ?", []uuid.UUID{lost.ID, found.ID}).
		Update("status", models.ReportStatusMatched).Error; err != nil {
		return nil, err
	}

	return match, nil
}
