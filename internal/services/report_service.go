package services

import (
	"errors"
	"strings"
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/dto"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/plate"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidPlate    = errors.New("invalid plate")
	ErrSecretRequired  = errors.New("a secret of at least 4 characters is required for lost reports")
	ErrReportNotActive = errors.New("report is not active")
)

type ReportService struct {
	db    *gorm.DB
	vault SecretVault
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Create ingests a report. The plate is normalized once; only the masked
// form and the lookup hash are persisted. Lost reports also store the
// owner's proof in the secret vault, in the same transaction.
func (s *ReportService) Create(userID uuid.UUID, kind models.ReportKind, req *dto.CreateReportRequest) (*models.Report, error) {
	p, err := plate.Normalize(req.Plate)
	if err != nil {
		return nil, ErrInvalidPlate
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, errors.New("city is required")
	}

	secret := strings.TrimSpace(req.Secret)
	if kind == models.ReportKindLost && len(secret) < 4 {
		return nil, ErrSecretRequired
	}

	eventAt := req.EventAt
	if eventAt.IsZero() {
		eventAt = time.Now().UTC()
	}

	lookupHash := p.LookupHash()
	report := &models.Report{
		ID:              uuid.New(),
		Kind:            kind,
		PlateMasked:     p.Masked(),
		PlateLookupHash: &lookupHash,
		City:            city,
		Neighborhood:    optional(req.Neighborhood),
		EventAt:         eventAt,
		Description:     optional(req.Description),
		PhotoURL:        optional(req.PhotoURL),
		Status:          models.ReportStatusActive,
		CreatedByUserID: userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		if kind == models.ReportKindLost {
			return s.vault.Store(tx, report.ID, secret)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Search returns active reports only. A full plate in the query matches
// via the lookup hash; a masked plate (contains the mask symbol, so it
// fails normalization) matches the stored masked form.
func (s *ReportService) Search(q *dto.ReportSearchQuery) ([]models.Report, error) {
	query := s.db.Model(&models.Report{}).Where("status = ?", models.ReportStatusActive)

	if raw := strings.TrimSpace(q.Plate); raw != "" {
		if p, err := plate.Normalize(raw); err == nil {
			query = query.Where("plate_lookup_hash = ?", p.LookupHash())
		} else {
			masked := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(raw))
			query = query.Where("plate_masked = ?", masked)
		}
	}
	if city := strings.TrimSpace(q.City); city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if q.DateFrom != nil {
		query = query.Where("event_at >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("event_at <= ?", *q.DateTo)
	}

	var reports []models.Report
	err := query.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (s *ReportService) GetByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Status == models.ReportStatusRemoved {
		return nil, ErrReportNotFound
	}
	return &report, nil
}

func (s *ReportService) GetMine(userID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.
		Where("created_by_user_id = ? AND status <> ?", userID, models.ReportStatusRemoved).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// Close is the owner closing their own active report. Matched reports
// close through match handover, not here.
func (s *ReportService) Close(id, userID uuid.UUID) error {
	report, err := s.ownedReport(id, userID)
	if err != nil {
		return err
	}
	if report.Status != models.ReportStatusActive {
		return ErrReportNotActive
	}

	now := time.Now().UTC()
	return s.db.Model(report).Updates(map[string]interface{}{
		"status":    models.ReportStatusClosed,
		"closed_at": now,
	}).Error
}

// Remove soft-deletes any non-removed report owned by the caller.
func (s *ReportService) Remove(id, userID uuid.UUID) error {
	report, err := s.ownedReport(id, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.db.Model(report).Updates(map[string]interface{}{
		"status":     models.ReportStatusRemoved,
		"removed_at": now,
	}).Error
}

// ownedReport conflates absence, removal and foreign ownership so a
// caller cannot probe for other users' reports.
func (s *ReportService) ownedReport(id, userID uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.CreatedByUserID != userID || report.Status == models.ReportStatusRemoved {
		return nil, ErrReportNotFound
	}
	return &report, nil
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
