package chat_controllers

import (
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
)

var chatController = &ChatController{
	chatService: chat_services.GetChatService(),
	taskService: tasks_services.GetTaskService(),
}

func GetChatController() *ChatController {
	return chatController
}
