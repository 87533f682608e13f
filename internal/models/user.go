package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User holds the account record. Email is stored lowercased; Password
// is the serialized PBKDF2 credential, never the plaintext. OAuth-only
// accounts carry an empty Password.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	DisplayName    string         `gorm:"size:100" json:"display_name"`
	EmailVerified  bool           `gorm:"default:false" json:"email_verified"`
	Onboarded      bool           `gorm:"default:false" json:"onboarded"`
	AuthProvider   string         `gorm:"size:50;default:'email'" json:"-"`
	ProviderUserID *string        `gorm:"size:255;index" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
