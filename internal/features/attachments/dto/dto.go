package attachments_dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"taskId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	URL         string    `json:"url"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListAttachmentsResponseDTO struct {
	Attachments []*AttachmentResponseDTO `json:"attachments"`
}
