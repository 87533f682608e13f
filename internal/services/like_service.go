package services

import (
	"errors"

	"github.com/alperendogan/devboard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProjectNotFound = errors.New("project not found")

// LikeResult is the state after a toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Toggle flips the like state for (userID, projectID) and moves the
// denormalized count in the same transaction. Delete-first: the number
// of deleted rows tells whether a like existed. The insert is guarded
// by the (user_id, project_id) unique index with ON CONFLICT DO
// NOTHING, so two concurrent likes insert exactly one row and bump the
// count exactly once. Applying Toggle twice restores the prior state.
func (s *LikeService) Toggle(userID, projectID uuid.UUID) (*LikeResult, error) {
	var liked bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return ErrProjectNotFound
		}

		res := tx.Where("user_id = ? AND project_id = ?", userID, projectID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Project{}).
				Where("id = ?", projectID).
				Update("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
		}

		like := models.Like{
			ID:        uuid.New(),
			UserID:    userID,
			ProjectID: projectID,
		}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if ins.Error != nil {
			return ins.Error
		}
		if ins.RowsAffected == 0 {
			// A concurrent request inserted the like first; the count
			// was already bumped once.
			liked = true
			return nil
		}

		liked = true
		return tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	count, err := s.LikeCount(projectID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: liked, LikeCount: count}, nil
}

func (s *LikeService) LikeCount(projectID uuid.UUID) (int, error) {
	var project models.Project
	if err := s.db.Select("like_count").First(&project, "id = ?", projectID).Error; err != nil {
		return 0, ErrProjectNotFound
	}
	return project.LikeCount, nil
}

func (s *LikeService) HasLiked(userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}
