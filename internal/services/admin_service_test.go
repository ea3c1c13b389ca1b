package services

import (
	"testing"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagReport(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	reporter := createUser(t, db, "reporter@example.com")
	report := createFoundReport(t, db, owner.ID, "ABC1D23")

	svc := NewAdminService(db)

	flag, err := svc.FlagReport(report.ID, reporter.ID, "  placa adulterada  ")
	require.NoError(t, err)
	assert.Equal(t, models.ReportFlagStatusOpen, flag.Status)
	assert.Equal(t, "placa adulterada", flag.Reason)

	_, err = svc.FlagReport(report.ID, reporter.ID, "   ")
	assert.Error(t, err)

	_, err = svc.FlagReport(uuid.New(), reporter.ID, "não existe")
	assert.ErrorIs(t, err, ErrReportNotFound)

	flags, err := svc.ListFlags()
	require.NoError(t, err)
	assert.Len(t, flags, 1)
}

func TestAdminRemoveReport(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	reporter := createUser(t, db, "reporter@example.com")
	report := createFoundReport(t, db, owner.ID, "XYZ9A88")

	svc := NewAdminService(db)
	_, err := svc.FlagReport(report.ID, reporter.ID, "anúncio falso")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveReport(report.ID))

	var got models.Report
	require.NoError(t, db.First(&got, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusRemoved, got.Status)
	assert.NotNil(t, got.RemovedAt)

	// Removal settles every open flag on the report.
	var flags []models.ReportFlag
	require.NoError(t, db.Find(&flags, "report_id = ?", report.ID).Error)
	require.Len(t, flags, 1)
	assert.Equal(t, models.ReportFlagStatusReviewed, flags[0].Status)

	// Removed reports stop appearing in public reads.
	_, err = NewReportService(db).GetByID(report.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	assert.ErrorIs(t, svc.RemoveReport(uuid.New()), ErrReportNotFound)
}
