package projects_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	projects_dto "github.com/Betocasasa/projecthub-backend/internal/features/projects/dto"
	projects_enums "github.com/Betocasasa/projecthub-backend/internal/features/projects/enums"
	projects_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/projects/interfaces"
	projects_models "github.com/Betocasasa/projecthub-backend/internal/features/projects/models"
	projects_repositories "github.com/Betocasasa/projecthub-backend/internal/features/projects/repositories"
	teams_services "github.com/Betocasasa/projecthub-backend/internal/features/teams/services"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository        *projects_repositories.ProjectRepository
	teamService              *teams_services.TeamService
	auditLogService          *audit_logs.AuditLogService
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	teamID uuid.UUID,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_models.Project, error) {
	canAccess, _, err := s.teamService.CanUserAccessTeam(teamID, creator)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to create projects in this team")
	}

	team, err := s.teamService.GetTeam(teamID, creator)
	if err != nil {
		return nil, err
	}

	status := request.Status
	if status == "" {
		status = projects_enums.ProjectStatusActive
	}
	if !status.IsValid() {
		return nil, errors.New("invalid project status")
	}

	project := &projects_models.Project{
		ID:          uuid.New(),
		TeamID:      team.ID,
		Name:        request.Name,
		Description: request.Description,
		Status:      status,
		CreatedBy:   creator.ID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&teamID,
	)

	return project, nil
}

func (s *ProjectService) GetProject(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, errors.New("project not found")
	}

	canAccess, _, err := s.teamService.CanUserAccessTeam(project.TeamID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view project")
	}

	return project, nil
}

func (s *ProjectService) GetTeamProjects(
	teamID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ListProjectsResponseDTO, error) {
	canAccess, _, err := s.teamService.CanUserAccessTeam(teamID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view team projects")
	}

	projects, err := s.projectRepository.GetProjectsByTeamID(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, errors.New("project not found")
	}

	canAccess, _, err := s.teamService.CanUserAccessTeam(project.TeamID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to update project")
	}

	if !request.Status.IsValid() {
		return nil, errors.New("invalid project status")
	}

	project.Name = request.Name
	project.Description = request.Description
	project.Status = request.Status

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&user.ID,
		&project.TeamID,
	)

	return project, nil
}

func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return errors.New("project not found")
	}

	canManage, err := s.teamService.CanUserManageTeam(project.TeamID, user)
	if err != nil {
		return err
	}
	if !canManage && project.CreatedBy != user.ID {
		return errors.New("only team owner, admin or project creator can delete project")
	}

	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&project.TeamID,
	)

	return nil
}

// GetProjectWithCache is the hot-path lookup used by the tasks feature. It never
// checks permissions; callers gate access themselves.
func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	// Tier 1: Check cache
	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, errors.New("project not found")
		}

		return cachedProject, nil
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		project, err := s.projectRepository.GetProjectByID(projectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, errors.New("project not found")
		}
		return project, nil
	})

	if err != nil {
		// Cache the invalid project to prevent future DB hits
		invalidCachedProject := &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		}
		s.projectCacheUtil.Set(projectIDStr, invalidCachedProject)
		return nil, errors.New("project not found")
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	// Cache the valid project
	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

// OnBeforeTeamDeletion removes every project of the team, running project deletion
// listeners first so tasks and attachments go with them.
func (s *ProjectService) OnBeforeTeamDeletion(teamID uuid.UUID) error {
	projects, err := s.projectRepository.GetProjectsByTeamID(teamID)
	if err != nil {
		return fmt.Errorf("failed to list team projects: %w", err)
	}

	for _, project := range projects {
		for _, listener := range s.projectDeletionListeners {
			if err := listener.OnBeforeProjectDeletion(project.ID); err != nil {
				return err
			}
		}

		if err := s.projectRepository.DeleteProject(project.ID); err != nil {
			return fmt.Errorf("failed to delete project %s: %w", project.ID, err)
		}

		s.projectCacheUtil.Invalidate(project.ID.String())
	}

	return nil
}
