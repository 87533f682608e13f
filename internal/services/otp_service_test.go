package services

import (
	"testing"
	"time"

	"github.com/alperendogan/devboard/internal/dto"
	"github.com/alperendogan/devboard/internal/models"
	"github.com/alperendogan/devboard/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOTPFixture(t *testing.T) (*OTPService, *AuthService, *captureMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	mail := &captureMailer{}
	return NewOTPService(db, cfg, mail), NewAuthService(db, cfg), mail, db
}

func TestOTP_VerifyEmail(t *testing.T) {
	otpSvc, authSvc, mail, db := newOTPFixture(t)

	_, err := authSvc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, otpSvc.Issue("a@x.com", models.OTPPurposeVerify))
	code := mail.lastCode(t)
	require.Len(t, code, 6)

	// Only the hash is stored.
	var otp models.EmailOTP
	require.NoError(t, db.First(&otp, "email = ?", "a@x.com").Error)
	assert.Equal(t, security.HashToken(code), otp.CodeHash)
	assert.Nil(t, otp.UsedAt)

	require.NoError(t, otpSvc.VerifyEmail("A@X.COM", code))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "a@x.com").Error)
	assert.True(t, user.EmailVerified)

	require.NoError(t, db.First(&otp, "email = ?", "a@x.com").Error)
	assert.NotNil(t, otp.UsedAt)
}

func TestOTP_SecondRedeemFails(t *testing.T) {
	otpSvc, authSvc, mail, _ := newOTPFixture(t)

	_, err := authSvc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, otpSvc.Issue("a@x.com", models.OTPPurposeVerify))
	code := mail.lastCode(t)

	require.NoError(t, otpSvc.VerifyEmail("a@x.com", code))
	assert.ErrorIs(t, otpSvc.VerifyEmail("a@x.com", code), ErrInvalidOrExpiredCode)
}

func TestOTP_WrongCodeOrPurpose(t *testing.T) {
	otpSvc, authSvc, mail, _ := newOTPFixture(t)

	_, err := authSvc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, otpSvc.Issue("a@x.com", models.OTPPurposeVerify))
	code := mail.lastCode(t)

	assert.ErrorIs(t, otpSvc.VerifyEmail("a@x.com", "000000"), ErrInvalidOrExpiredCode)

	// A verify-purpose code cannot reset a password.
	err = otpSvc.ResetPassword("a@x.com", code, "newpassword123")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestOTP_Expired(t *testing.T) {
	otpSvc, authSvc, mail, db := newOTPFixture(t)

	_, err := authSvc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, otpSvc.Issue("a@x.com", models.OTPPurposeVerify))
	code := mail.lastCode(t)

	// Age the row past its expiry.
	require.NoError(t, db.Model(&models.EmailOTP{}).
		Where("email = ?", "a@x.com").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	assert.ErrorIs(t, otpSvc.VerifyEmail("a@x.com", code), ErrInvalidOrExpiredCode)
}

func TestOTP_OlderCodeStaysValidUntilExpiry(t *testing.T) {
	otpSvc, authSvc, mail, _ := newOTPFixture(t)

	_, err := authSvc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, otpSvc.Issue("a@x.com", models.OTPPurposeVerify))
	first := mail.lastCode(t)
	require.NoError(t, otpSvc.Issue("a@x.com", models.OTPPurposeVerify))
	second := mail.lastCode(t)

	if first == second {
		t.Skip("codes collided")
	}

	// Issuing a new code does not revoke the previous one.
	require.NoError(t, otpSvc.VerifyEmail("a@x.com", first))
	require.NoError(t, otpSvc.VerifyEmail("a@x.com", second))
}

func TestOTP_PasswordReset(t *testing.T) {
	otpSvc, authSvc, mail, db := newOTPFixture(t)

	reg, err := authSvc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "oldpassword1"})
	require.NoError(t, err)

	require.NoError(t, otpSvc.RequestPasswordReset("a@x.com"))
	code := mail.lastCode(t)
	assert.Equal(t, models.OTPPurposeReset, mail.purposes[len(mail.purposes)-1])

	var before models.User
	require.NoError(t, db.First(&before, "email = ?", "a@x.com").Error)

	require.NoError(t, otpSvc.ResetPassword("a@x.com", code, "newpassword1"))

	var after models.User
	require.NoError(t, db.First(&after, "email = ?", "a@x.com").Error)
	assert.NotEqual(t, before.Password, after.Password)

	// Old password no longer verifies; new one does.
	_, err = authSvc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "oldpassword1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = authSvc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "newpassword1"})
	assert.NoError(t, err)

	// Reset revoked the pre-existing session.
	_, err = authSvc.ResolveSession(reg.SessionToken)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// The code is spent.
	assert.ErrorIs(t, otpSvc.ResetPassword("a@x.com", code, "anotherpass1"), ErrInvalidOrExpiredCode)
}

func TestOTP_ResetForUnknownEmailIsSilent(t *testing.T) {
	otpSvc, _, mail, _ := newOTPFixture(t)

	require.NoError(t, otpSvc.RequestPasswordReset("ghost@x.com"))
	assert.Empty(t, mail.codes)

	assert.ErrorIs(t, otpSvc.ResetPassword("ghost@x.com", "123456", "newpassword1"),
		ErrInvalidOrExpiredCode)
}
