package tasks_repositories

import (
	"time"

	tasks_dto "github.com/Betocasasa/projecthub-backend/internal/features/tasks/dto"
	tasks_models "github.com/Betocasasa/projecthub-backend/internal/features/tasks/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"github.com/google/uuid"
)

type ParticipantRepository struct{}

func (r *ParticipantRepository) AddParticipant(participant *tasks_models.TaskParticipant) error {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(participant).Error
}

func (r *ParticipantRepository) IsParticipant(taskID, userID uuid.UUID) (bool, error) {
	var count int64

	err := storage.GetDb().
		Model(&tasks_models.TaskParticipant{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error

	return count > 0, err
}

func (r *ParticipantRepository) GetParticipants(
	taskID uuid.UUID,
) ([]tasks_dto.TaskParticipantResponseDTO, error) {
	var participants = make([]tasks_dto.TaskParticipantResponseDTO, 0)

	err := storage.GetDb().
		Table("task_participants tp").
		Select("tp.user_id, tp.created_at, u.email, u.name").
		Joins("JOIN users u ON tp.user_id = u.id").
		Where("tp.task_id = ?", taskID).
		Order("tp.created_at ASC").
		Scan(&participants).Error

	return participants, err
}

func (r *ParticipantRepository) RemoveParticipant(taskID, userID uuid.UUID) error {
	return storage.GetDb().
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&tasks_models.TaskParticipant{}).Error
}

func (r *ParticipantRepository) RemoveAllParticipants(taskID uuid.UUID) error {
	return storage.GetDb().
		Where("task_id = ?", taskID).
		Delete(&tasks_models.TaskParticipant{}).Error
}
