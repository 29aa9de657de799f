package chat_gateway

import (
	"encoding/json"
	"time"

	chat_models "github.com/Betocasasa/projecthub-backend/internal/features/chat/models"
)

const (
	EventJoinTask    = "joinTask"
	EventSendMessage = "sendMessage"
	EventNewMessage  = "newMessage"
	EventError       = "error"
)

// Envelope is the wire frame: {"event": "<name>", "data": <payload>}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type OutboundEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type SendMessagePayload struct {
	TaskID  string  `json:"taskId"`
	Message string  `json:"message"`
	Emoji   *string `json:"emoji,omitempty"`
}

type NewMessagePayload struct {
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Emoji     *string   `json:"emoji,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessageFrame(message *chat_models.TaskMessage) ([]byte, error) {
	return json.Marshal(&OutboundEnvelope{
		Event: EventNewMessage,
		Data: &NewMessagePayload{
			UserID:    message.UserID.String(),
			Message:   message.Message,
			Emoji:     message.Emoji,
			Timestamp: message.CreatedAt,
		},
	})
}

func errorFrame(chatError *chat_models.ChatError) []byte {
	frame, err := json.Marshal(&OutboundEnvelope{
		Event: EventError,
		Data:  chatError,
	})
	if err != nil {
		return []byte(`{"event":"error","data":{"code":"STORAGE_FAILURE","message":"internal error"}}`)
	}

	return frame
}
