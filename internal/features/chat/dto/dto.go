package chat_dto

import (
	chat_models "github.com/Betocasasa/projecthub-backend/internal/features/chat/models"
)

type SendMessageRequestDTO struct {
	Message string  `json:"message" binding:"required,max=4000"`
	Emoji   *string `json:"emoji"   binding:"omitempty,max=16"`
}

type GetHistoryResponseDTO struct {
	Messages []*chat_models.TaskMessage `json:"messages"`
}
