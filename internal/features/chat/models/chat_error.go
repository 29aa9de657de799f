package chat_models

import (
	chat_enums "github.com/Betocasasa/projecthub-backend/internal/features/chat/enums"
)

// ChatError is the wire-level chat failure: controllers map it to an HTTP
// status, the realtime gateway sends it as an "error" event payload.
type ChatError struct {
	Code    chat_enums.ChatErrorCode `json:"code"`
	Message string                   `json:"message"`
	Field   string                   `json:"field,omitempty"`
}

func (e *ChatError) Error() string {
	return e.Message
}

func NewChatError(code chat_enums.ChatErrorCode, message string) *ChatError {
	return &ChatError{Code: code, Message: message}
}
