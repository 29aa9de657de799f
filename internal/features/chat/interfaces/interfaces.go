package chat_interfaces

import (
	chat_models "github.com/Betocasasa/projecthub-backend/internal/features/chat/models"

	"github.com/google/uuid"
)

// RoomBroadcaster fans a persisted message out to every live session in the
// task's room. Implemented by the realtime gateway.
type RoomBroadcaster interface {
	BroadcastNewMessage(taskID uuid.UUID, message *chat_models.TaskMessage)
}
