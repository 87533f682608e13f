package services

import (
	"fmt"
	"strings"

	"github.com/alperendogan/devboard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(ownerID uuid.UUID, title, description string) (*models.Project, error) {
	project := models.Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Slug:        slugify(title) + "-" + uuid.NewString()[:8],
		Description: description,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (s *ProjectService) List(limit, offset int) ([]models.Project, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var projects []models.Project
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, err
}

func (s *ProjectService) Get(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, ErrProjectNotFound
	}
	return &project, nil
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	return strings.Trim(slug, "-")
}
