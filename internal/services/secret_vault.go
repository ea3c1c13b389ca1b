package services

import (
	"errors"
	"fmt"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrNoSecretConfigured = errors.New("lost report has no secret configured")

// SecretVault stores ownership proofs as bcrypt hashes, one per lost
// report. The plaintext proof exists only inside the request that
// created or verifies it; nothing here can return it.
//
// Methods take the *gorm.DB explicitly so callers can run them inside
// their own transactions.
type SecretVault struct{}

func (SecretVault) Store(db *gorm.DB, reportID uuid.UUID, proof string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(proof), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}
	return db.Create(&models.LostSecret{
		ID:         uuid.New(),
		ReportID:   reportID,
		SecretHash: string(hash),
	}).Error
}

// Exists reports ErrNoSecretConfigured when the report has no stored
// proof. A found report queried here, or a lost report created without a
// proof, is a configuration error upstream.
func (SecretVault) Exists(db *gorm.DB, reportID uuid.UUID) error {
	var count int64
	if err := db.Model(&models.LostSecret{}).Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNoSecretConfigured
	}
	return nil
}

// Verify compares a candidate proof against the stored hash.
func (SecretVault) Verify(db *gorm.DB, reportID uuid.UUID, candidate string) (bool, error) {
	var secret models.LostSecret
	if err := db.First(&secret, "report_id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNoSecretConfigured
		}
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(secret.SecretHash), []byte(candidate)) == nil, nil
}
