package projects_dto

import (
	projects_enums "github.com/Betocasasa/projecthub-backend/internal/features/projects/enums"
	projects_models "github.com/Betocasasa/projecthub-backend/internal/features/projects/models"
)

type CreateProjectRequestDTO struct {
	Name        string                       `json:"name"        binding:"required,min=1,max=255"`
	Description string                       `json:"description" binding:"max=2000"`
	Status      projects_enums.ProjectStatus `json:"status"`
}

type UpdateProjectRequestDTO struct {
	Name        string                       `json:"name"        binding:"required,min=1,max=255"`
	Description string                       `json:"description" binding:"max=2000"`
	Status      projects_enums.ProjectStatus `json:"status"      binding:"required"`
}

type ListProjectsResponseDTO struct {
	Projects []*projects_models.Project `json:"projects"`
}
