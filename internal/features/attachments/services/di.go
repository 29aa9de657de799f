package attachments_services

import (
	"sync"

	attachments_repositories "github.com/Betocasasa/projecthub-backend/internal/features/attachments/repositories"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	blob_storage "github.com/Betocasasa/projecthub-backend/internal/util/blob"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"
)

var attachmentRepository = &attachments_repositories.AttachmentRepository{}

var attachmentService = &AttachmentService{
	attachmentRepository: attachmentRepository,
	taskService:          tasks_services.GetTaskService(),
	blobStorage:          blob_storage.GetBlobStorage(),
	queueService:         cache_utils.NewValkeyQueueService(),
	logger:               logger.GetLogger(),
}

var attachmentCleanupBackgroundService = &AttachmentCleanupBackgroundService{
	attachmentService: attachmentService,
	logger:            logger.GetLogger(),
	wg:                sync.WaitGroup{},
}

func GetAttachmentService() *AttachmentService {
	return attachmentService
}

func GetAttachmentCleanupBackgroundService() *AttachmentCleanupBackgroundService {
	return attachmentCleanupBackgroundService
}

// SetupDependencies hooks attachment cleanup into task deletion.
func SetupDependencies() {
	tasks_services.GetTaskService().AddTaskDeletionListener(attachmentService)
}
