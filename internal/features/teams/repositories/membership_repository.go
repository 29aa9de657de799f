package teams_repositories

import (
	"errors"
	"time"

	teams_dto "github.com/Betocasasa/projecthub-backend/internal/features/teams/dto"
	teams_models "github.com/Betocasasa/projecthub-backend/internal/features/teams/models"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	"github.com/Betocasasa/projecthub-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(membership *teams_models.TeamMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByUserAndTeam(
	userID, teamID uuid.UUID,
) (*teams_models.TeamMembership, error) {
	var membership teams_models.TeamMembership

	if err := storage.GetDb().
		Where("user_id = ? AND team_id = ?", userID, teamID).
		First(&membership).Error; err != nil {
		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetTeamMembers(
	teamID uuid.UUID,
) ([]*teams_dto.TeamMemberResponseDTO, error) {
	var members []*teams_dto.TeamMemberResponseDTO

	err := storage.GetDb().
		Table("team_memberships tm").
		Select("tm.id, tm.user_id, u.email, u.name, tm.role, tm.created_at").
		Joins("JOIN users u ON tm.user_id = u.id").
		Where("tm.team_id = ?", teamID).
		Order("tm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) UpdateMemberRole(userID, teamID uuid.UUID, role users_enums.TeamRole) error {
	return storage.GetDb().
		Model(&teams_models.TeamMembership{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Update("role", role).Error
}

func (r *MembershipRepository) RemoveMember(userID, teamID uuid.UUID) error {
	return storage.GetDb().
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Delete(&teams_models.TeamMembership{}).Error
}

func (r *MembershipRepository) RemoveAllMembers(teamID uuid.UUID) error {
	return storage.GetDb().
		Where("team_id = ?", teamID).
		Delete(&teams_models.TeamMembership{}).Error
}

func (r *MembershipRepository) GetUserTeamRole(teamID, userID uuid.UUID) (*users_enums.TeamRole, error) {
	var membership teams_models.TeamMembership
	err := storage.GetDb().
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership.Role, nil
}

func (r *MembershipRepository) GetTeamOwner(teamID uuid.UUID) (*teams_models.TeamMembership, error) {
	var membership teams_models.TeamMembership

	err := storage.GetDb().
		Where("team_id = ? AND role = ?", teamID, users_enums.TeamRoleOwner).
		First(&membership).Error

	if err != nil {
		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetTeamsWithRolesByUserID(
	userRole users_enums.UserRole,
	userID uuid.UUID,
) ([]teams_dto.TeamResponseDTO, error) {
	// Global admins see every team; members see only teams they belong to.
	if userRole == users_enums.UserRoleAdmin {
		var teams []teams_dto.TeamResponseDTO

		err := storage.GetDb().
			Table("teams t").
			Select("t.id, t.name, t.description, t.created_by, t.created_at, tm.role as user_role").
			Joins("LEFT JOIN team_memberships tm ON tm.team_id = t.id AND tm.user_id = ?", userID).
			Order("t.created_at DESC").
			Scan(&teams).Error

		return teams, err
	}

	var teams []teams_dto.TeamResponseDTO

	err := storage.GetDb().
		Table("teams t").
		Select("t.id, t.name, t.description, t.created_by, t.created_at, tm.role as user_role").
		Joins("JOIN team_memberships tm ON tm.team_id = t.id").
		Where("tm.user_id = ?", userID).
		Order("t.created_at DESC").
		Scan(&teams).Error

	return teams, err
}
