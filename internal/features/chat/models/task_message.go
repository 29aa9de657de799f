package chat_models

import (
	"time"

	"github.com/google/uuid"
)

// TaskMessage is one entry of a task's append-only chat log. Position and
// timestamp are assigned at persistence time, never taken from the client.
type TaskMessage struct {
	ID        uuid.UUID `json:"id"              gorm:"column:id"`
	TaskID    uuid.UUID `json:"taskId"          gorm:"column:task_id"`
	UserID    uuid.UUID `json:"userId"          gorm:"column:user_id"`
	Message   string    `json:"message"         gorm:"column:message"`
	Emoji     *string   `json:"emoji,omitempty" gorm:"column:emoji"`
	Position  int64     `json:"position"        gorm:"column:position"`
	CreatedAt time.Time `json:"timestamp"       gorm:"column:created_at"`
}

func (TaskMessage) TableName() string {
	return "task_messages"
}
