package tasks_dto

import (
	"time"

	tasks_enums "github.com/Betocasasa/projecthub-backend/internal/features/tasks/enums"
	tasks_models "github.com/Betocasasa/projecthub-backend/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title       string                   `json:"title"       binding:"required,min=1,max=255"`
	Description string                   `json:"description" binding:"max=5000"`
	Priority    tasks_enums.TaskPriority `json:"priority"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"`
}

type UpdateTaskRequestDTO struct {
	Title       string                   `json:"title"       binding:"required,min=1,max=255"`
	Description string                   `json:"description" binding:"max=5000"`
	Status      tasks_enums.TaskStatus   `json:"status"      binding:"required"`
	Priority    tasks_enums.TaskPriority `json:"priority"    binding:"required"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"`
}

// ListTasksRequestDTO carries the optional query filters. The time bounds
// accept any format ParseTimestamp understands (RFC3339, unix seconds/millis).
type ListTasksRequestDTO struct {
	Status      *tasks_enums.TaskStatus   `form:"status"`
	Priority    *tasks_enums.TaskPriority `form:"priority"`
	AssigneeID  *uuid.UUID                `form:"assigneeId"`
	CreatedFrom *string                   `form:"createdFrom"`
	CreatedTo   *string                   `form:"createdTo"`
}

type ListTasksResponseDTO struct {
	Tasks []*tasks_models.Task `json:"tasks"`
}

type AddParticipantRequestDTO struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

type TaskParticipantResponseDTO struct {
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	Email     string    `json:"email"     gorm:"column:email"`
	Name      string    `json:"name"      gorm:"column:name"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

type GetParticipantsResponseDTO struct {
	Participants []TaskParticipantResponseDTO `json:"participants"`
}
