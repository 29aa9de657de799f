package tasks_models

import (
	"time"

	tasks_enums "github.com/Betocasasa/projecthub-backend/internal/features/tasks/enums"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID               `json:"id"          gorm:"column:id"`
	ProjectID   uuid.UUID               `json:"projectId"   gorm:"column:project_id"`
	Title       string                  `json:"title"       gorm:"column:title"`
	Description string                  `json:"description" gorm:"column:description"`
	Status      tasks_enums.TaskStatus  `json:"status"      gorm:"column:status"`
	Priority    tasks_enums.TaskPriority `json:"priority"    gorm:"column:priority"`
	AssigneeID  *uuid.UUID              `json:"assigneeId"  gorm:"column:assignee_id"`
	CreatedBy   uuid.UUID               `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time               `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time               `json:"updatedAt"   gorm:"column:updated_at"`

	// Used for caching non-existent tasks
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
