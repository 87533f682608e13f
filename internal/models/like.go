package models

import (
	"time"

	"github.com/google/uuid"
)

// Like marks that a user liked a project. The composite unique index
// is what turns a concurrent double-insert into a detectable conflict.
// No soft delete: un-liking removes the row.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_project" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_project" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}
