package tasks_repositories

import (
	"errors"
	"time"

	tasks_dto "github.com/Betocasasa/projecthub-backend/internal/features/tasks/dto"
	tasks_models "github.com/Betocasasa/projecthub-backend/internal/features/tasks/models"
	"github.com/Betocasasa/projecthub-backend/internal/storage"
	time_parser "github.com/Betocasasa/projecthub-backend/internal/util/time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	return storage.GetDb().Create(task).Error
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	if err := storage.GetDb().Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetTasksByProjectID(
	projectID uuid.UUID,
	filters *tasks_dto.ListTasksRequestDTO,
) ([]*tasks_models.Task, error) {
	var tasks = make([]*tasks_models.Task, 0)

	query := storage.GetDb().Where("project_id = ?", projectID)

	if filters != nil {
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.Priority != nil {
			query = query.Where("priority = ?", *filters.Priority)
		}
		if filters.AssigneeID != nil {
			query = query.Where("assignee_id = ?", *filters.AssigneeID)
		}
		if filters.CreatedFrom != nil {
			query = query.Where("created_at >= ?", time_parser.ParseTimestamp(*filters.CreatedFrom))
		}
		if filters.CreatedTo != nil {
			query = query.Where("created_at <= ?", time_parser.ParseTimestamp(*filters.CreatedTo))
		}
	}

	err := query.Order("created_at DESC").Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	return storage.GetDb().Save(task).Error
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	return storage.GetDb().Delete(&tasks_models.Task{}, taskID).Error
}
