package models

import (
	"time"

	"github.com/google/uuid"
)

// OAuthState binds a sign-in attempt to the provider callback. The raw
// state value never touches the database; a leaked row cannot be
// replayed without the original random value.
type OAuthState struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Provider  string     `gorm:"size:50;not null;index" json:"provider"`
	StateHash string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	UsedAt    *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}
