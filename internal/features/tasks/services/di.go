package tasks_services

import (
	"github.com/Betocasasa/projecthub-backend/internal/cache"
	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	tasks_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/tasks/interfaces"
	tasks_models "github.com/Betocasasa/projecthub-backend/internal/features/tasks/models"
	tasks_repositories "github.com/Betocasasa/projecthub-backend/internal/features/tasks/repositories"
	teams_services "github.com/Betocasasa/projecthub-backend/internal/features/teams/services"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var taskRepository = &tasks_repositories.TaskRepository{}
var participantRepository = &tasks_repositories.ParticipantRepository{}

var taskService = &TaskService{
	taskRepository,
	participantRepository,
	projects_services.GetProjectService(),
	teams_services.GetTeamService(),
	audit_logs.GetAuditLogService(),
	[]tasks_interfaces.TaskDeletionListener{},
	cache_utils.NewCacheUtil[tasks_models.Task](cache.GetCache(), "ph_task:"),
	singleflight.Group{},
}

func GetTaskService() *TaskService {
	return taskService
}

// SetupDependencies hooks tasks into project deletion.
func SetupDependencies() {
	projects_services.GetProjectService().AddProjectDeletionListener(taskService)
}
