package attachments_models

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	TaskID      uuid.UUID `json:"taskId"      gorm:"column:task_id"`
	FileName    string    `json:"fileName"    gorm:"column:file_name"`
	ContentType string    `json:"contentType" gorm:"column:content_type"`
	SizeBytes   int64     `json:"sizeBytes"   gorm:"column:size_bytes"`
	StorageKey  string    `json:"-"           gorm:"column:storage_key"`
	UploadedBy  uuid.UUID `json:"uploadedBy"  gorm:"column:uploaded_by"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
