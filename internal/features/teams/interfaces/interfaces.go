package teams_interfaces

import "github.com/google/uuid"

type TeamDeletionListener interface {
	OnBeforeTeamDeletion(teamID uuid.UUID) error
}
