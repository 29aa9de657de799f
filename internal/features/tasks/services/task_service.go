package tasks_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	tasks_dto "github.com/Betocasasa/projecthub-backend/internal/features/tasks/dto"
	tasks_enums "github.com/Betocasasa/projecthub-backend/internal/features/tasks/enums"
	tasks_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/tasks/interfaces"
	tasks_models "github.com/Betocasasa/projecthub-backend/internal/features/tasks/models"
	tasks_repositories "github.com/Betocasasa/projecthub-backend/internal/features/tasks/repositories"
	teams_services "github.com/Betocasasa/projecthub-backend/internal/features/teams/services"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type TaskService struct {
	taskRepository        *tasks_repositories.TaskRepository
	participantRepository *tasks_repositories.ParticipantRepository
	projectService        *projects_services.ProjectService
	teamService           *teams_services.TeamService
	auditLogService       *audit_logs.AuditLogService
	taskDeletionListeners []tasks_interfaces.TaskDeletionListener

	taskCacheUtil *cache_utils.CacheUtil[tasks_models.Task]
	singleflight  singleflight.Group // Prevents thundering herd on DB calls
}

func (s *TaskService) AddTaskDeletionListener(listener tasks_interfaces.TaskDeletionListener) {
	s.taskDeletionListeners = append(s.taskDeletionListeners, listener)
}

func (s *TaskService) CreateTask(
	projectID uuid.UUID,
	request *tasks_dto.CreateTaskRequestDTO,
	creator *users_models.User,
) (*tasks_models.Task, error) {
	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}

	canAccess, _, err := s.teamService.CanUserAccessTeam(project.TeamID, creator)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to create tasks in this project")
	}

	priority := request.Priority
	if priority == "" {
		priority = tasks_enums.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.New("invalid task priority")
	}

	task := &tasks_models.Task{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Title:       request.Title,
		Description: request.Description,
		Status:      tasks_enums.TaskStatusTodo,
		Priority:    priority,
		AssigneeID:  request.AssigneeID,
		CreatedBy:   creator.ID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// Pre-warm cache for the chat hot path
	s.taskCacheUtil.Set(task.ID.String(), task)

	// Creator always participates in the task thread
	participant := &tasks_models.TaskParticipant{
		TaskID:    task.ID,
		UserID:    creator.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.participantRepository.AddParticipant(participant); err != nil {
		return nil, fmt.Errorf("failed to add task creator as participant: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task created: %s", task.Title),
		&creator.ID,
		&project.TeamID,
	)

	return task, nil
}

func (s *TaskService) GetTask(taskID uuid.UUID, user *users_models.User) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, errors.New("task not found")
	}

	if err := s.checkTaskAccess(task, user); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) GetProjectTasks(
	projectID uuid.UUID,
	filters *tasks_dto.ListTasksRequestDTO,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}

	canAccess, _, err := s.teamService.CanUserAccessTeam(project.TeamID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view project tasks")
	}

	if filters != nil {
		if filters.Status != nil && !filters.Status.IsValid() {
			return nil, errors.New("invalid task status")
		}
		if filters.Priority != nil && !filters.Priority.IsValid() {
			return nil, errors.New("invalid task priority")
		}
	}

	tasks, err := s.taskRepository.GetTasksByProjectID(projectID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get project tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) UpdateTask(
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, errors.New("task not found")
	}

	if err := s.checkTaskAccess(task, user); err != nil {
		return nil, err
	}

	if !request.Status.IsValid() {
		return nil, errors.New("invalid task status")
	}
	if !request.Priority.IsValid() {
		return nil, errors.New("invalid task priority")
	}

	task.Title = request.Title
	task.Description = request.Description
	task.Status = request.Status
	task.Priority = request.Priority
	task.AssigneeID = request.AssigneeID

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.taskCacheUtil.Invalidate(taskID.String())

	return task, nil
}

func (s *TaskService) DeleteTask(taskID uuid.UUID, user *users_models.User) error {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return errors.New("task not found")
	}

	if err := s.checkTaskAccess(task, user); err != nil {
		return err
	}

	return s.deleteTask(task, &user.ID)
}

func (s *TaskService) deleteTask(task *tasks_models.Task, deletedBy *uuid.UUID) error {
	for _, listener := range s.taskDeletionListeners {
		if err := listener.OnBeforeTaskDeletion(task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
	}

	if err := s.participantRepository.RemoveAllParticipants(task.ID); err != nil {
		return fmt.Errorf("failed to remove task participants: %w", err)
	}

	if err := s.taskRepository.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.taskCacheUtil.Invalidate(task.ID.String())

	if deletedBy != nil {
		s.auditLogService.WriteAuditLog(
			fmt.Sprintf("Task deleted: %s", task.Title),
			deletedBy,
			nil,
		)
	}

	return nil
}

func (s *TaskService) AddParticipant(
	taskID uuid.UUID,
	participantUserID uuid.UUID,
	addedBy *users_models.User,
) error {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return errors.New("task not found")
	}

	if err := s.checkTaskAccess(task, addedBy); err != nil {
		return err
	}

	isAlready, err := s.participantRepository.IsParticipant(taskID, participantUserID)
	if err != nil {
		return fmt.Errorf("failed to check participation: %w", err)
	}
	if isAlready {
		return errors.New("user is already a task participant")
	}

	participant := &tasks_models.TaskParticipant{
		TaskID:    taskID,
		UserID:    participantUserID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.participantRepository.AddParticipant(participant); err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	return nil
}

func (s *TaskService) RemoveParticipant(
	taskID uuid.UUID,
	participantUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return errors.New("task not found")
	}

	if err := s.checkTaskAccess(task, removedBy); err != nil {
		return err
	}

	isParticipant, err := s.participantRepository.IsParticipant(taskID, participantUserID)
	if err != nil {
		return fmt.Errorf("failed to check participation: %w", err)
	}
	if !isParticipant {
		return errors.New("user is not a task participant")
	}

	if err := s.participantRepository.RemoveParticipant(taskID, participantUserID); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	return nil
}

func (s *TaskService) GetParticipants(
	taskID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.GetParticipantsResponseDTO, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, errors.New("task not found")
	}

	if err := s.checkTaskAccess(task, user); err != nil {
		return nil, err
	}

	participants, err := s.participantRepository.GetParticipants(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	return &tasks_dto.GetParticipantsResponseDTO{Participants: participants}, nil
}

// GetTaskWithCache is the hot-path lookup used by the chat feature for every append
// and every joinTask. It never checks permissions; callers gate access themselves.
func (s *TaskService) GetTaskWithCache(taskID uuid.UUID) (*tasks_models.Task, error) {
	taskIDStr := taskID.String()

	// Tier 1: Check cache
	if cachedTask := s.taskCacheUtil.Get(taskIDStr); cachedTask != nil {
		if cachedTask.IsNotExists {
			return nil, errors.New("task not found")
		}

		return cachedTask, nil
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(taskIDStr, func() (any, error) {
		task, err := s.taskRepository.GetTaskByID(taskID)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, errors.New("task not found")
		}
		return task, nil
	})

	if err != nil {
		// Cache the invalid task to prevent future DB hits
		invalidCachedTask := &tasks_models.Task{
			ID:          taskID,
			IsNotExists: true,
		}
		s.taskCacheUtil.Set(taskIDStr, invalidCachedTask)
		return nil, errors.New("task not found")
	}

	task, ok := result.(*tasks_models.Task)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Task")
	}

	// Cache the valid task
	s.taskCacheUtil.Set(taskIDStr, task)

	return task, nil
}

// OnBeforeProjectDeletion removes every task of the project, running task deletion
// listeners first so chat logs and attachments go with them.
func (s *TaskService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	tasks, err := s.taskRepository.GetTasksByProjectID(projectID, nil)
	if err != nil {
		return fmt.Errorf("failed to list project tasks: %w", err)
	}

	for _, task := range tasks {
		if err := s.deleteTask(task, nil); err != nil {
			return err
		}
	}

	return nil
}

func (s *TaskService) checkTaskAccess(task *tasks_models.Task, user *users_models.User) error {
	project, err := s.projectService.GetProjectWithCache(task.ProjectID)
	if err != nil {
		return errors.New("task not found")
	}

	canAccess, _, err := s.teamService.CanUserAccessTeam(project.TeamID, user)
	if err != nil {
		return err
	}
	if !canAccess {
		return errors.New("insufficient permissions to access task")
	}

	return nil
}
