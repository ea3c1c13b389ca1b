package services

import (
	"errors"
	"strings"
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService is the moderation overlay: flags filed by users, reviewed
// and actioned by admins. Removal competes for the same report status
// field as the lifecycle, so it lives behind the same soft-delete rules.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) FlagReport(reportID, userID uuid.UUID, reason string) (*models.ReportFlag, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.New("reason is required")
	}

	var count int64
	if err := s.db.Model(&models.Report{}).Where("id = ?", reportID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrReportNotFound
	}

	flag := &models.ReportFlag{
		ID:              uuid.New(),
		ReportID:        reportID,
		CreatedByUserID: userID,
		Reason:          strings.TrimSpace(reason),
		Status:          models.ReportFlagStatusOpen,
	}
	if err := s.db.Create(flag).Error; err != nil {
		return nil, err
	}
	return flag, nil
}

func (s *AdminService) ListFlags() ([]models.ReportFlag, error) {
	var flags []models.ReportFlag
	err := s.db.Order("created_at DESC").Find(&flags).Error
	return flags, err
}

// RemoveReport soft-deletes a report and marks its open flags reviewed,
// in one transaction.
func (s *AdminService) RemoveReport(reportID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&report).Updates(map[string]interface{}{
			"status":     models.ReportStatusRemoved,
			"removed_at": now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.ReportFlag{}).
			Where("report_id = ? AND status = ?", reportID, models.ReportFlagStatusOpen).
			Update("status", models.ReportFlagStatusReviewed).Error
	})
}
