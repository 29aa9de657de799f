package attachments_repositories

import (
	"errors"
	"time"

	attachments_models "github.com/Betocasasa/projecthub-backend/internal/features/attachments/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentRepository struct{}

func (r *AttachmentRepository) CreateAttachment(attachment *attachments_models.Attachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(attachment).Error
}

func (r *AttachmentRepository) GetAttachmentByID(
	attachmentID uuid.UUID,
) (*attachments_models.Attachment, error) {
	var attachment attachments_models.Attachment

	if err := storage.GetDb().Where("id = ?", attachmentID).First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &attachment, nil
}

func (r *AttachmentRepository) GetAttachmentsByTaskID(
	taskID uuid.UUID,
) ([]*attachments_models.Attachment, error) {
	var attachments = make([]*attachments_models.Attachment, 0)

	err := storage.GetDb().
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&attachments).Error

	return attachments, err
}

func (r *AttachmentRepository) DeleteAttachment(attachmentID uuid.UUID) error {
	return storage.GetDb().Delete(&attachments_models.Attachment{}, attachmentID).Error
}

func (r *AttachmentRepository) DeleteAttachmentsByTaskID(taskID uuid.UUID) error {
	return storage.GetDb().
		Where("task_id = ?", taskID).
		Delete(&attachments_models.Attachment{}).Error
}
