package chat_cleanup

import (
	"sync"

	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"
)

var chatCleanupBackgroundService = &ChatCleanupBackgroundService{
	chatService:     chat_services.GetChatService(),
	settingsService: users_services.GetSettingsService(),
	auditLogService: audit_logs.GetAuditLogService(),
	logger:          logger.GetLogger(),
	wg:              sync.WaitGroup{},
}

func GetChatCleanupBackgroundService() *ChatCleanupBackgroundService {
	return chatCleanupBackgroundService
}
