package teams_models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedBy   uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Team) TableName() string {
	return "teams"
}
