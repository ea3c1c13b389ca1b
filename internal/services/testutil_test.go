package services

import (
	"testing"
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/config"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/dto"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database. A single
// connection keeps every gorm session on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.OtpRequest{},
		&models.Report{},
		&models.LostSecret{},
		&models.Claim{},
		&models.SafeLocation{},
		&models.Match{},
		&models.Message{},
		&models.ReportFlag{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		OTPCodeLength:    6,
		OTPExpiry:        10 * time.Minute,
		ClaimMaxAttempts: 5,
	}
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.New(),
		Email: email,
		Role:  models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createLostReport goes through the report service so the secret lands
// in the vault the same way production writes do.
func createLostReport(t *testing.T, db *gorm.DB, userID uuid.UUID, plate, secret string) *models.Report {
	t.Helper()
	report, err := NewReportService(db).Create(userID, models.ReportKindLost, &dto.CreateReportRequest{
		Plate:  plate,
		Secret: secret,
		City:   "São Paulo",
	})
	require.NoError(t, err)
	return report
}

func createFoundReport(t *testing.T, db *gorm.DB, userID uuid.UUID, plate string) *models.Report {
	t.Helper()
	report, err := NewReportService(db).Create(userID, models.ReportKindFound, &dto.CreateReportRequest{
		Plate: plate,
		City:  "São Paulo",
	})
	require.NoError(t, err)
	return report
}

func createSafeLocation(t *testing.T, db *gorm.DB, name string, active bool) *models.SafeLocation {
	t.Helper()
	loc := &models.SafeLocation{
		ID:       uuid.New(),
		Name:     name,
		Address:  "Av. Paulista, 1000",
		City:     "São Paulo",
		IsActive: active,
	}
	require.NoError(t, db.Create(loc).Error)
	return loc
}

// createOpenMatch runs the full claim pipeline: lost report with a
// secret, found report, one correct verification attempt.
func createOpenMatch(t *testing.T, db *gorm.DB) (match *models.Match, lostOwner, foundOwner *models.User) {
	t.Helper()
	lostOwner = createUser(t, db, uuid.NewString()+"@lost.example")
	foundOwner = createUser(t, db, uuid.NewString()+"@found.example")
	lost := createLostReport(t, db, lostOwner.ID, "ABC1D23", "chave azul")
	found := createFoundReport(t, db, foundOwner.ID, "ABC1D23")

	match, err := NewClaimService(db, 5).CreateClaim(lost.ID, found.ID, "chave azul", lostOwner.ID)
	require.NoError(t, err)
	require.NotNil(t, match)
	return match, lostOwner, foundOwner
}
