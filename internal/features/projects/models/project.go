package projects_models

import (
	"time"

	projects_enums "github.com/Betocasasa/projecthub-backend/internal/features/projects/enums"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id"`
	TeamID      uuid.UUID                    `json:"teamId"      gorm:"column:team_id"`
	Name        string                       `json:"name"        gorm:"column:name"`
	Description string                       `json:"description" gorm:"column:description"`
	Status      projects_enums.ProjectStatus `json:"status"      gorm:"column:status"`
	CreatedBy   uuid.UUID                    `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time                    `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                    `json:"updatedAt"   gorm:"column:updated_at"`

	// Used for caching non-existent projects
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}
