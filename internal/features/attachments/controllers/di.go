package attachments_controllers

import (
	attachments_services "github.com/Betocasasa/projecthub-backend/internal/features/attachments/services"
)

var attachmentController = &AttachmentController{
	attachmentService: attachments_services.GetAttachmentService(),
}

func GetAttachmentController() *AttachmentController {
	return attachmentController
}
