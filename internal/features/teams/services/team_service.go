package teams_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	teams_dto "github.com/Betocasasa/projecthub-backend/internal/features/teams/dto"
	teams_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/teams/interfaces"
	teams_models "github.com/Betocasasa/projecthub-backend/internal/features/teams/models"
	teams_repositories "github.com/Betocasasa/projecthub-backend/internal/features/teams/repositories"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"

	"github.com/google/uuid"
)

type TeamService struct {
	teamRepository        *teams_repositories.TeamRepository
	membershipRepository  *teams_repositories.MembershipRepository
	userService           *users_services.UserService
	auditLogService       *audit_logs.AuditLogService
	settingsService       *users_services.SettingsService
	teamDeletionListeners []teams_interfaces.TeamDeletionListener
}

func (s *TeamService) AddTeamDeletionListener(listener teams_interfaces.TeamDeletionListener) {
	s.teamDeletionListeners = append(s.teamDeletionListeners, listener)
}

func (s *TeamService) CreateTeam(
	request *teams_dto.CreateTeamRequestDTO,
	creator *users_models.User,
) (*teams_dto.TeamResponseDTO, error) {
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if !creator.CanCreateTeams(settings) {
		return nil, errors.New("insufficient permissions to create teams")
	}

	team := &teams_models.Team{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		CreatedBy:   creator.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.teamRepository.CreateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	membership := &teams_models.TeamMembership{
		UserID:    creator.ID,
		TeamID:    team.ID,
		Role:      users_enums.TeamRoleOwner,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create team membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team created: %s", team.Name),
		&creator.ID,
		&team.ID,
	)

	ownerRole := users_enums.TeamRoleOwner
	return &teams_dto.TeamResponseDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedBy:   team.CreatedBy,
		CreatedAt:   team.CreatedAt,
		UserRole:    &ownerRole,
	}, nil
}

func (s *TeamService) GetTeam(teamID uuid.UUID, user *users_models.User) (*teams_models.Team, error) {
	isCanAccess, _, err := s.CanUserAccessTeam(teamID, user)

	if err != nil {
		return nil, err
	}
	if !isCanAccess {
		return nil, errors.New("insufficient permissions to view team")
	}

	team, err := s.teamRepository.GetTeamByID(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team == nil {
		return nil, errors.New("team not found")
	}

	return team, nil
}

func (s *TeamService) GetUserTeams(user *users_models.User) (*teams_dto.ListTeamsResponseDTO, error) {
	teams, err := s.membershipRepository.GetTeamsWithRolesByUserID(user.Role, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user teams: %w", err)
	}

	return &teams_dto.ListTeamsResponseDTO{
		Teams: teams,
	}, nil
}

func (s *TeamService) UpdateTeam(
	teamID uuid.UUID,
	request *teams_dto.UpdateTeamRequestDTO,
	user *users_models.User,
) (*teams_models.Team, error) {
	canManage, err := s.CanUserManageTeam(teamID, user)

	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("insufficient permissions to update team")
	}

	existingTeam, err := s.teamRepository.GetTeamByID(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if existingTeam == nil {
		return nil, errors.New("team not found")
	}

	existingTeam.Name = request.Name
	existingTeam.Description = request.Description

	if err := s.teamRepository.UpdateTeam(existingTeam); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team updated: %s", existingTeam.Name),
		&user.ID,
		&teamID,
	)

	return existingTeam, nil
}

func (s *TeamService) DeleteTeam(teamID uuid.UUID, user *users_models.User) error {
	if user.Role != users_enums.UserRoleAdmin {
		userTeamRole, err := s.GetUserTeamRole(teamID, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get user role: %w", err)
		}

		if userTeamRole == nil || *userTeamRole != users_enums.TeamRoleOwner {
			return errors.New("only team owner or admin can delete team")
		}
	}

	team, err := s.teamRepository.GetTeamByID(teamID)
	if err != nil {
		return fmt.Errorf("failed to get team: %w", err)
	}
	if team == nil {
		return errors.New("team not found")
	}

	for _, listener := range s.teamDeletionListeners {
		if err := listener.OnBeforeTeamDeletion(teamID); err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}
	}

	if err := s.membershipRepository.RemoveAllMembers(teamID); err != nil {
		return fmt.Errorf("failed to remove team members: %w", err)
	}

	if err := s.teamRepository.DeleteTeam(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team deleted: %s", team.Name),
		&user.ID,
		&teamID,
	)

	return nil
}

func (s *TeamService) GetUserTeamRole(teamID uuid.UUID, userID uuid.UUID) (*users_enums.TeamRole, error) {
	return s.membershipRepository.GetUserTeamRole(teamID, userID)
}

func (s *TeamService) CanUserAccessTeam(
	teamID uuid.UUID,
	user *users_models.User,
) (bool, *users_enums.TeamRole, error) {
	if user.Role == users_enums.UserRoleAdmin {
		adminRole := users_enums.TeamRoleOwner
		return true, &adminRole, nil
	}

	role, err := s.membershipRepository.GetUserTeamRole(teamID, user.ID)
	if err != nil {
		return false, nil, nil
	}

	return role != nil, role, nil
}

func (s *TeamService) CanUserManageTeam(teamID uuid.UUID, user *users_models.User) (bool, error) {
	if user.Role == users_enums.UserRoleAdmin {
		return true, nil
	}

	role, err := s.membershipRepository.GetUserTeamRole(teamID, user.ID)
	if err != nil {
		return false, err
	}

	if role == nil {
		return false, nil
	}

	return *role == users_enums.TeamRoleOwner || *role == users_enums.TeamRoleAdmin, nil
}

func (s *TeamService) GetTeamAuditLogs(
	teamID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	isCanAccess, _, err := s.CanUserAccessTeam(teamID, user)
	if err != nil {
		return nil, err
	}
	if !isCanAccess {
		return nil, errors.New("insufficient permissions to view team audit logs")
	}

	return s.auditLogService.GetTeamAuditLogs(teamID, request)
}

func (s *TeamService) GetAllTeams() ([]*teams_models.Team, error) {
	return s.teamRepository.GetAllTeams()
}
