package projects_services

import (
	"github.com/Betocasasa/projecthub-backend/internal/cache"
	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	projects_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/projects/interfaces"
	projects_models "github.com/Betocasasa/projecthub-backend/internal/features/projects/models"
	projects_repositories "github.com/Betocasasa/projecthub-backend/internal/features/projects/repositories"
	teams_services "github.com/Betocasasa/projecthub-backend/internal/features/teams/services"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}

var projectService = &ProjectService{
	projectRepository,
	teams_services.GetTeamService(),
	audit_logs.GetAuditLogService(),
	[]projects_interfaces.ProjectDeletionListener{},
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "ph_project:"),
	singleflight.Group{},
}

func GetProjectService() *ProjectService {
	return projectService
}

// SetupDependencies hooks projects into team deletion.
func SetupDependencies() {
	teams_services.GetTeamService().AddTeamDeletionListener(projectService)
}
