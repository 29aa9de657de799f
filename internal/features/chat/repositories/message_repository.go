package chat_repositories

import (
	"time"

	chat_models "github.com/Betocasasa/projecthub-backend/internal/features/chat/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository struct{}

// AppendMessage assigns position = max(position)+1 and inserts, both inside one
// transaction so concurrent appends to a task can never claim the same slot.
func (r *MessageRepository) AppendMessage(message *chat_models.TaskMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var maxPosition int64

		err := tx.Model(&chat_models.TaskMessage{}).
			Where("task_id = ?", message.TaskID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error
		if err != nil {
			return err
		}

		message.Position = maxPosition + 1

		return tx.Create(message).Error
	})
}

func (r *MessageRepository) GetHistoryByTaskID(taskID uuid.UUID) ([]*chat_models.TaskMessage, error) {
	var messages = make([]*chat_models.TaskMessage, 0)

	err := storage.GetDb().
		Where("task_id = ?", taskID).
		Order("position ASC").
		Find(&messages).Error

	return messages, err
}

func (r *MessageRepository) DeleteMessagesByTaskID(taskID uuid.UUID) error {
	return storage.GetDb().
		Where("task_id = ?", taskID).
		Delete(&chat_models.TaskMessage{}).Error
}

func (r *MessageRepository) DeleteMessagesBefore(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("created_at < ?", cutoff).
		Delete(&chat_models.TaskMessage{})

	return result.RowsAffected, result.Error
}
