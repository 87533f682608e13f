package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Credit transaction reason codes.
const (
	CreditReasonSignupBonus   = "signup_bonus"
	CreditReasonProjectBoost  = "project_boost"
	CreditReasonAdminGrant    = "admin_grant"
	CreditReasonReviewReward  = "review_reward"
	CreditReasonFeatureUnlock = "feature_unlock"
)

// CreditTransaction is one row of the append-only ledger. Rows are
// never updated or deleted; a user's balance is always the sum over
// their rows.
type CreditTransaction struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    int64          `gorm:"not null" json:"amount"`
	Reason    string         `gorm:"size:50;not null" json:"reason"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
