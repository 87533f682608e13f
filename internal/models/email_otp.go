package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP purposes.
const (
	OTPPurposeVerify = "verify"
	OTPPurposeReset  = "reset"
)

// EmailOTP is a single-use emailed code. Only the SHA-256 hash of the
// code is stored. UsedAt is set exactly once; it is never cleared.
// Multiple unredeemed rows may exist per (email, purpose); redemption
// targets the newest one.
type EmailOTP struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"size:255;not null;index:idx_email_otps_email_purpose" json:"email"`
	CodeHash  string     `gorm:"size:64;not null" json:"-"`
	Purpose   string     `gorm:"size:20;not null;index:idx_email_otps_email_purpose" json:"purpose"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
