package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

type TaskParticipant struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	TaskID    uuid.UUID `json:"taskId"    gorm:"column:task_id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (TaskParticipant) TableName() string {
	return "task_participants"
}
