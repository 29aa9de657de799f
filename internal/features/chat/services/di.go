package chat_services

import (
	"github.com/Betocasasa/projecthub-backend/internal/cache"
	chat_dto "github.com/Betocasasa/projecthub-backend/internal/features/chat/dto"
	chat_repositories "github.com/Betocasasa/projecthub-backend/internal/features/chat/repositories"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"
	"github.com/Betocasasa/projecthub-backend/internal/util/rate_limit"
)

var messageRepository = &chat_repositories.MessageRepository{}

var chatService = &ChatService{
	messageRepository: messageRepository,
	taskService:       tasks_services.GetTaskService(),
	rateLimiter:       rate_limit.NewRateLimiter(),
	historyCacheUtil:  cache_utils.NewCacheUtil[chat_dto.GetHistoryResponseDTO](cache.GetCache(), "ph_chat_history:"),
	logger:            logger.GetLogger(),
}

func GetChatService() *ChatService {
	return chatService
}

// SetupDependencies hooks the chat log into task deletion.
func SetupDependencies() {
	tasks_services.GetTaskService().AddTaskDeletionListener(chatService)
}
