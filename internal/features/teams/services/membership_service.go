package teams_services

import (
	"errors"
	"fmt"

	audit_logs "github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	teams_dto "github.com/Betocasasa/projecthub-backend/internal/features/teams/dto"
	teams_models "github.com/Betocasasa/projecthub-backend/internal/features/teams/models"
	teams_repositories "github.com/Betocasasa/projecthub-backend/internal/features/teams/repositories"
	users_dto "github.com/Betocasasa/projecthub-backend/internal/features/users/dto"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *teams_repositories.MembershipRepository
	teamRepository       *teams_repositories.TeamRepository
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
	teamService          *TeamService
	settingsService      *users_services.SettingsService
}

func (s *MembershipService) GetMembers(
	teamID uuid.UUID,
	user *users_models.User,
) (*teams_dto.GetMembersResponseDTO, error) {
	canAccess, _, err := s.teamService.CanUserAccessTeam(teamID, user)

	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view team members")
	}

	members, err := s.membershipRepository.GetTeamMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	membersList := make([]teams_dto.TeamMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &teams_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *MembershipService) AddMember(
	teamID uuid.UUID,
	request *teams_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*teams_dto.AddMemberResponseDTO, error) {
	if err := s.validateCanManageMembership(teamID, addedBy, request.Role); err != nil {
		return nil, err
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, err
	}

	if targetUser == nil {
		// User doesn't exist, invite them
		settings, err := s.settingsService.GetSettings()
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}

		if !addedBy.CanInviteUsers(settings) {
			return nil, errors.New("insufficient permissions to invite users")
		}

		inviteRequest := &users_dto.InviteUserRequestDTO{
			Email:            request.Email,
			IntendedTeamID:   &teamID,
			IntendedTeamRole: &request.Role,
		}

		inviteResponse, err := s.userService.InviteUser(inviteRequest, addedBy)
		if err != nil {
			return nil, err
		}

		membership := &teams_models.TeamMembership{
			UserID: inviteResponse.ID,
			TeamID: teamID,
			Role:   request.Role,
		}

		if err := s.membershipRepository.CreateMembership(membership); err != nil {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}

		s.auditLogService.WriteAuditLog(
			fmt.Sprintf("User invited to team: %s and added as %s", request.Email, request.Role),
			&addedBy.ID,
			&teamID,
		)

		return &teams_dto.AddMemberResponseDTO{
			Status: teams_dto.AddStatusInvited,
		}, nil
	}

	existingRole, err := s.membershipRepository.GetUserTeamRole(teamID, targetUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existingRole != nil {
		return nil, errors.New("user is already a member of this team")
	}

	membership := &teams_models.TeamMembership{
		UserID: targetUser.ID,
		TeamID: teamID,
		Role:   request.Role,
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to team: %s as %s", targetUser.Email, request.Role),
		&addedBy.ID,
		&teamID,
	)

	return &teams_dto.AddMemberResponseDTO{
		Status: teams_dto.AddStatusAdded,
	}, nil
}

func (s *MembershipService) ChangeMemberRole(
	teamID uuid.UUID,
	memberUserID uuid.UUID,
	request *teams_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	if err := s.validateCanManageMembership(teamID, changedBy, request.Role); err != nil {
		return err
	}

	if memberUserID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndTeam(memberUserID, teamID)
	if err != nil {
		return errors.New("user is not a member of this team")
	}

	if existingMembership.Role == users_enums.TeamRoleOwner {
		return errors.New("cannot change owner role")
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.UpdateMemberRole(memberUserID, teamID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf(
			"Member role changed: %s from %s to %s",
			targetUser.Email,
			existingMembership.Role,
			request.Role,
		),
		&changedBy.ID,
		&teamID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	teamID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	canManage, err := s.teamService.CanUserManageTeam(teamID, removedBy)
	if err != nil {
		return err
	}

	if !canManage {
		return errors.New("insufficient permissions to remove members")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndTeam(memberUserID, teamID)
	if err != nil {
		return errors.New("user is not a member of this team")
	}

	if existingMembership.Role == users_enums.TeamRoleOwner {
		return errors.New("cannot remove team owner, transfer ownership first")
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.RemoveMember(memberUserID, teamID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member removed from team: %s", targetUser.Email),
		&removedBy.ID,
		&teamID,
	)

	return nil
}

func (s *MembershipService) TransferOwnership(
	teamID uuid.UUID,
	request *teams_dto.TransferOwnershipRequestDTO,
	user *users_models.User,
) error {
	currentRole, err := s.membershipRepository.GetUserTeamRole(teamID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get current user role: %w", err)
	}

	if user.Role != users_enums.UserRoleAdmin &&
		(currentRole == nil || *currentRole != users_enums.TeamRoleOwner) {
		return errors.New("only team owner or admin can transfer ownership")
	}

	newOwner, err := s.userService.GetUserByEmail(request.NewOwnerEmail)
	if err != nil {
		return errors.New("new owner not found")
	}

	if newOwner == nil {
		return errors.New("new owner not found")
	}

	_, err = s.membershipRepository.GetMembershipByUserAndTeam(newOwner.ID, teamID)
	if err != nil {
		return errors.New("new owner must be a team member")
	}

	currentOwner, err := s.membershipRepository.GetTeamOwner(teamID)
	if err != nil {
		return fmt.Errorf("failed to find current team owner: %w", err)
	}

	if currentOwner == nil {
		return errors.New("no current team owner found")
	}

	if err := s.membershipRepository.UpdateMemberRole(newOwner.ID, teamID, users_enums.TeamRoleOwner); err != nil {
		return fmt.Errorf("failed to update new owner role: %w", err)
	}

	if err := s.membershipRepository.UpdateMemberRole(currentOwner.UserID, teamID, users_enums.TeamRoleAdmin); err != nil {
		return fmt.Errorf("failed to update previous owner role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team ownership transferred to: %s", newOwner.Email),
		&user.ID,
		&teamID,
	)

	return nil
}

func (s *MembershipService) validateCanManageMembership(
	teamID uuid.UUID,
	user *users_models.User,
	changesRoleTo users_enums.TeamRole,
) error {
	canManageTeam, err := s.teamService.CanUserManageTeam(teamID, user)
	if err != nil {
		return err
	}

	if !canManageTeam {
		return errors.New("insufficient permissions to manage members")
	}

	currentRole, err := s.membershipRepository.GetUserTeamRole(teamID, user.ID)
	if err != nil {
		return err
	}

	if changesRoleTo == users_enums.TeamRoleAdmin || changesRoleTo == users_enums.TeamRoleOwner {
		// Global admins can manage any role
		if user.Role == users_enums.UserRoleAdmin {
			return nil
		}

		if currentRole == nil || *currentRole != users_enums.TeamRoleOwner {
			return errors.New("only team owner can add/manage admins")
		}
	}

	return nil
}
