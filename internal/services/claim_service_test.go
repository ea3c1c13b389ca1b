package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClaim_CorrectSecretCreatesMatch(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "ABC1D23", "adesivo verde")
	found := createFoundReport(t, db, finder.ID, "ABC1D23")

	svc := NewClaimService(db, 5)
	match, err := svc.CreateClaim(lost.ID, found.ID, "adesivo verde", owner.ID)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, models.MatchStatusOpen, match.Status)
	assert.Equal(t, lost.ID, match.LostReportID)
	assert.Equal(t, found.ID, match.FoundReportID)

	var claim models.Claim
	require.NoError(t, db.First(&claim, "lost_report_id = ?", lost.ID).Error)
	assert.Equal(t, models.ClaimStatusVerified, claim.Status)
	assert.NotNil(t, claim.VerifiedAt)

	for _, id := range []uuid.UUID{lost.ID, found.ID} {
		var report models.Report
		require.NoError(t, db.First(&report, "id = ?", id).Error)
		assert.Equal(t, models.ReportStatusMatched, report.Status)
	}
}

func TestCreateClaim_WrongThenCorrectSecret(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "XYZ9A88", "arranhão na tampa")
	found := createFoundReport(t, db, finder.ID, "XYZ9A88")

	svc := NewClaimService(db, 5)

	_, err := svc.CreateClaim(lost.ID, found.ID, "palpite errado", owner.ID)
	require.ErrorIs(t, err, ErrIncorrectSecret)

	// The failed attempt must survive the request.
	var claim models.Claim
	require.NoError(t, db.First(&claim, "lost_report_id = ?", lost.ID).Error)
	assert.Equal(t, 1, claim.AttemptsCount)
	assert.Equal(t, models.ClaimStatusPending, claim.Status)

	match, err := svc.CreateClaim(lost.ID, found.ID, "arranhão na tampa", owner.ID)
	require.NoError(t, err)
	require.NotNil(t, match)

	require.NoError(t, db.First(&claim, "id = ?", claim.ID).Error)
	assert.Equal(t, models.ClaimStatusVerified, claim.Status)
	assert.Equal(t, 1, claim.AttemptsCount)
}

func TestCreateClaim_AttemptCapRejectsClaim(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "DEF4G56", "chaveiro vermelho")
	found := createFoundReport(t, db, finder.ID, "DEF4G56")

	svc := NewClaimService(db, 5)

	for i := 0; i < 5; i++ {
		_, err := svc.CreateClaim(lost.ID, found.ID, "errado", owner.ID)
		require.ErrorIs(t, err, ErrIncorrectSecret, "attempt %d", i+1)
	}

	// The cap lands on the fifth attempt, not the sixth.
	var claim models.Claim
	require.NoError(t, db.First(&claim, "lost_report_id = ?", lost.ID).Error)
	assert.Equal(t, 5, claim.AttemptsCount)
	assert.Equal(t, models.ClaimStatusRejected, claim.Status)

	// The right secret no longer helps.
	_, err := svc.CreateClaim(lost.ID, found.ID, "chaveiro vermelho", owner.ID)
	require.ErrorIs(t, err, ErrTooManyAttempts)

	require.NoError(t, db.First(&claim, "id = ?", claim.ID).Error)
	assert.Equal(t, 5, claim.AttemptsCount)
}

func TestCreateClaim_AlreadyVerifiedPair(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "GHI7J89", "documento no porta-luvas")
	found := createFoundReport(t, db, finder.ID, "GHI7J89")

	svc := NewClaimService(db, 5)
	_, err := svc.CreateClaim(lost.ID, found.ID, "documento no porta-luvas", owner.ID)
	require.NoError(t, err)

	// Repeating the claim reports the verified state, even though both
	// reports are now matched.
	_, err = svc.CreateClaim(lost.ID, found.ID, "documento no porta-luvas", owner.ID)
	require.ErrorIs(t, err, ErrAlreadyVerified)

	var matches int64
	require.NoError(t, db.Model(&models.Match{}).Count(&matches).Error)
	assert.EqualValues(t, 1, matches)
}

func TestCreateClaim_InvalidReports(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	lost := createLostReport(t, db, owner.ID, "JKL1M23", "farol trincado")
	found := createFoundReport(t, db, finder.ID, "JKL1M23")

	svc := NewClaimService(db, 5)

	t.Run("missing lost report", func(t *testing.T) {
		_, err := svc.CreateClaim(uuid.New(), found.ID, "farol trincado", owner.ID)
		assert.ErrorIs(t, err, ErrInvalidLostReport)
	})

	t.Run("claimant does not own the lost report", func(t *testing.T) {
		_, err := svc.CreateClaim(lost.ID, found.ID, "farol trincado", stranger.ID)
		assert.ErrorIs(t, err, ErrInvalidLostReport)
	})

	t.Run("lost report used on the found side", func(t *testing.T) {
		otherLost := createLostReport(t, db, owner.ID, "JKL1M24", "farol trincado")
		_, err := svc.CreateClaim(lost.ID, otherLost.ID, "farol trincado", owner.ID)
		assert.ErrorIs(t, err, ErrInvalidFoundReport)
	})

	t.Run("missing found report", func(t *testing.T) {
		_, err := svc.CreateClaim(lost.ID, uuid.New(), "farol trincado", owner.ID)
		assert.ErrorIs(t, err, ErrInvalidFoundReport)
	})

	t.Run("closed lost report", func(t *testing.T) {
		closedLost := createLostReport(t, db, owner.ID, "JKL1M25", "farol trincado")
		require.NoError(t, NewReportService(db).Close(closedLost.ID, owner.ID))
		_, err := svc.CreateClaim(closedLost.ID, found.ID, "farol trincado", owner.ID)
		assert.ErrorIs(t, err, ErrInvalidLostReport)
	})
}

func TestCreateClaim_NoSecretConfigured(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	found := createFoundReport(t, db, finder.ID, "MNO4P56")

	// A lost report written without a vault entry; the service path
	// makes this impossible, so insert the row directly.
	hash := "hash"
	lost := &models.Report{
		ID:              uuid.New(),
		Kind:            models.ReportKindLost,
		PlateMasked:     "MNO4***",
		PlateLookupHash: &hash,
		City:            "São Paulo",
		Status:          models.ReportStatusActive,
		CreatedByUserID: owner.ID,
	}
	require.NoError(t, db.Create(lost).Error)

	_, err := NewClaimService(db, 5).CreateClaim(lost.ID, found.ID, "qualquer", owner.ID)
	assert.ErrorIs(t, err, ErrNoSecretConfigured)
}

func TestCreateClaim_FailedAttemptRollsBackNothingElse(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "QRS7T89", "retrovisor colado")
	found := createFoundReport(t, db, finder.ID, "QRS7T89")

	_, err := NewClaimService(db, 5).CreateClaim(lost.ID, found.ID, "errado", owner.ID)
	require.ErrorIs(t, err, ErrIncorrectSecret)

	// A failed attempt must not touch the reports or create a match.
	var report models.Report
	require.NoError(t, db.First(&report, "id = ?", lost.ID).Error)
	assert.Equal(t, models.ReportStatusActive, report.Status)

	var matches int64
	require.NoError(t, db.Model(&models.Match{}).Count(&matches).Error)
	assert.EqualValues(t, 0, matches)
}

func TestCreateClaim_ConcurrentCorrectProofs(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "CON1C23", "tampa amassada")
	found := createFoundReport(t, db, finder.ID, "CON1C23")

	svc := NewClaimService(db, 5)

	// Duplicate submissions racing with the same correct proof: exactly
	// one may win; the loser sees the pair as settled or conflicted.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateClaim(lost.ID, found.ID, "tampa amassada", owner.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes int
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, errors.Is(err, ErrAlreadyVerified) || errors.Is(err, ErrClaimConflict),
			"unexpected loser error: %v", err)
	}
	assert.Equal(t, 1, successes)

	var matches int64
	require.NoError(t, db.Model(&models.Match{}).Count(&matches).Error)
	assert.EqualValues(t, 1, matches)

	var verified int64
	require.NoError(t, db.Model(&models.Claim{}).
		Where("status = ?", models.ClaimStatusVerified).
		Count(&verified).Error)
	assert.EqualValues(t, 1, verified)
}

func TestRecordFailedAttempt_StaleCountConflicts(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "STA1L23", "farol quebrado")
	found := createFoundReport(t, db, finder.ID, "STA1L23")

	svc := NewClaimService(db, 5)
	_, err := svc.CreateClaim(lost.ID, found.ID, "errado", owner.ID)
	require.ErrorIs(t, err, ErrIncorrectSecret)

	// A snapshot taken before the increment loses the compare-and-swap:
	// its count no longer matches the row.
	var stale models.Claim
	require.NoError(t, db.First(&stale, "lost_report_id = ?", lost.ID).Error)
	stale.AttemptsCount = 0

	err = svc.recordFailedAttempt(db, &stale)
	assert.ErrorIs(t, err, ErrClaimConflict)

	// The losing update must not touch the row.
	var claim models.Claim
	require.NoError(t, db.First(&claim, "id = ?", stale.ID).Error)
	assert.Equal(t, 1, claim.AttemptsCount)
	assert.Equal(t, models.ClaimStatusPending, claim.Status)
}

func TestCreateClaim_CustomAttemptCap(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	finder := createUser(t, db, "finder@example.com")
	lost := createLostReport(t, db, owner.ID, "UVW1X23", "banco rasgado")
	found := createFoundReport(t, db, finder.ID, "UVW1X23")

	svc := NewClaimService(db, 2)
	_, err := svc.CreateClaim(lost.ID, found.ID, "errado", owner.ID)
	require.ErrorIs(t, err, ErrIncorrectSecret)
	_, err = svc.CreateClaim(lost.ID, found.ID, "errado de novo", owner.ID)
	require.ErrorIs(t, err, ErrIncorrectSecret)
	_, err = svc.CreateClaim(lost.ID, found.ID, "banco rasgado", owner.ID)
	require.ErrorIs(t, err, ErrTooManyAttempts)
}
