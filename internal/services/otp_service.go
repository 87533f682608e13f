package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alperendogan/devboard/internal/config"
	"github.com/alperendogan/devboard/internal/mailer"
	"github.com/alperendogan/devboard/internal/models"
	"github.com/alperendogan/devboard/internal/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidOrExpiredCode covers wrong, expired and already-used codes
// alike; callers never learn which, so codes cannot be enumerated.
var ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

type OTPService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer mailer.Mailer
}

func NewOTPService(db *gorm.DB, cfg *config.Config, m mailer.Mailer) *OTPService {
	return &OTPService{db: db, cfg: cfg, mailer: m}
}

// Issue creates a fresh code for (email, purpose) and hands it to the
// mailer. Earlier unredeemed codes stay valid until their own expiry;
// redemption picks the newest matching row.
func (s *OTPService) Issue(email, purpose string) error {
	email = NormalizeEmail(email)

	code, err := security.GenerateNumericCode(s.cfg.OTPDigits)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	otp := models.EmailOTP{
		ID:        uuid.New(),
		Email:     email,
		CodeHash:  security.HashToken(code),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.cfg.OTPExpiry),
	}
	if err := s.db.Create(&otp).Error; err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.mailer.SendOTP(email, code, purpose); err != nil {
		slog.Error("otp delivery failed", "email", email, "purpose", purpose, "error", err)
		return fmt.Errorf("failed to send code: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a reset code only when the email belongs
// to an account, but reports success either way.
func (s *OTPService) RequestPasswordReset(email string) error {
	email = NormalizeEmail(email)

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		slog.Info("password reset requested for unknown email", "email", email)
		return nil
	}
	return s.Issue(email, models.OTPPurposeReset)
}

// VerifyEmail redeems a verify-purpose code and marks the account's
// email verified in the same transaction.
func (s *OTPService) VerifyEmail(email, code string) error {
	email = NormalizeEmail(email)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := redeemOTP(tx, email, code, models.OTPPurposeVerify); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("email = ?", email).
			Update("email_verified", true).Error
	})
}

// ResetPassword redeems a reset-purpose code, replaces the password
// credential and revokes all outstanding sessions, atomically. If two
// redemptions race, exactly one wins; the loser sees the code as used.
func (s *OTPService) ResetPassword(email, code, newPassword string) error {
	email = NormalizeEmail(email)

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return ErrInvalidOrExpiredCode
		}

		if err := redeemOTP(tx, email, code, models.OTPPurposeReset); err != nil {
			return err
		}

		if err := tx.Model(&user).Update("password", hash).Error; err != nil {
			return err
		}
		return revokeUserSessions(tx, user.ID)
	})
}

// redeemOTP marks the newest live matching code as used. The mark is a
// compare-and-set on used_at, so concurrent redemptions of the same
// row cannot both succeed.
func redeemOTP(tx *gorm.DB, email, code, purpose string) error {
	now := time.Now()

	var otp models.EmailOTP
	err := tx.Where("email = ? AND code_hash = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?",
		email, security.HashToken(code), purpose, now).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return ErrInvalidOrExpiredCode
	}

	res := tx.Model(&models.EmailOTP{}).
		Where("id = ? AND used_at IS NULL", otp.ID).
		Update("used_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidOrExpiredCode
	}
	return nil
}
