package projects_repositories

import (
	"errors"
	"time"

	projects_models "github.com/Betocasasa/projecthub-backend/internal/features/projects/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetProjectsByTeamID(teamID uuid.UUID) ([]*projects_models.Project, error) {
	var projects = make([]*projects_models.Project, 0)

	err := storage.GetDb().
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	project.UpdatedAt = time.Now().UTC()
	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.Project{}, projectID).Error
}
