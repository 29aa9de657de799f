package teams_models

import (
	"time"

	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type TeamMembership struct {
	ID        uuid.UUID            `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID            `json:"userId"    gorm:"column:user_id"`
	TeamID    uuid.UUID            `json:"teamId"    gorm:"column:team_id"`
	Role      users_enums.TeamRole `json:"role"      gorm:"column:role"`
	CreatedAt time.Time            `json:"createdAt" gorm:"column:created_at"`
}

func (TeamMembership) TableName() string {
	return "team_memberships"
}
