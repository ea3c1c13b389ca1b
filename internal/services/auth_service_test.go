package services

import (
	"testing"
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/dto"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSender records the last code instead of delivering it.
type captureSender struct {
	email string
	code  string
}

func (s *captureSender) SendCode(email, code string) error {
	s.email = email
	s.code = code
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &captureSender{})

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "Maria@Example.com",
		Password: "senha-segura",
		FullName: "Maria Silva",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "maria@example.com", resp.User.Email)

	_, err = svc.Register(&dto.RegisterRequest{Email: "maria@example.com", Password: "outra-senha"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(&dto.LoginRequest{Email: "maria@example.com", Password: "senha-segura"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "maria@example.com", Password: "senha-errada"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "ninguem@example.com", Password: "tanto-faz"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &captureSender{})

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@b.c", Password: "curta"})
	assert.Error(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "", Password: "senha-segura"})
	assert.Error(t, err)
}

func TestOtpFlow(t *testing.T) {
	db := newTestDB(t)
	sender := &captureSender{}
	svc := NewAuthService(db, testConfig(), sender)

	require.NoError(t, svc.RequestOtp("joao@example.com"))
	require.Len(t, sender.code, 6)
	assert.Equal(t, "joao@example.com", sender.email)

	// Only the hash is stored.
	var request models.OtpRequest
	require.NoError(t, db.First(&request, "email = ?", "joao@example.com").Error)
	assert.NotEqual(t, sender.code, request.CodeHash)

	_, err := svc.VerifyOtp("joao@example.com", "000000")
	if sender.code == "000000" {
		t.Skip("generated code collided with the wrong-guess fixture")
	}
	require.ErrorIs(t, err, ErrOtpInvalid)

	resp, err := svc.VerifyOtp("joao@example.com", sender.code)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "joao@example.com", resp.User.Email)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	// The verified user exists now; a second login reuses the row.
	time.Sleep(5 * time.Millisecond) // the newest request must sort last
	require.NoError(t, svc.RequestOtp("joao@example.com"))
	resp2, err := svc.VerifyOtp("joao@example.com", sender.code)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, resp2.User.ID)
}

func TestOtpAttemptCap(t *testing.T) {
	db := newTestDB(t)
	sender := &captureSender{}
	svc := NewAuthService(db, testConfig(), sender)

	require.NoError(t, svc.RequestOtp("ana@example.com"))
	wrong := "999999"
	if sender.code == wrong {
		wrong = "999998"
	}

	for i := 0; i < otpMaxAttempts; i++ {
		_, err := svc.VerifyOtp("ana@example.com", wrong)
		require.ErrorIs(t, err, ErrOtpInvalid, "attempt %d", i+1)
	}

	// Capped even with the right code.
	_, err := svc.VerifyOtp("ana@example.com", sender.code)
	assert.ErrorIs(t, err, ErrOtpTooManyAttempts)
}

func TestOtpExpiry(t *testing.T) {
	db := newTestDB(t)
	sender := &captureSender{}
	cfg := testConfig()
	cfg.OTPExpiry = -time.Minute // already expired on arrival
	svc := NewAuthService(db, cfg, sender)

	require.NoError(t, svc.RequestOtp("expirado@example.com"))
	_, err := svc.VerifyOtp("expirado@example.com", sender.code)
	assert.ErrorIs(t, err, ErrOtpInvalid)
}

func TestRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &captureSender{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: "rot@example.com", Password: "senha-segura"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The spent token is dead.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated one still works.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &captureSender{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: "sai@example.com", Password: "senha-segura"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
