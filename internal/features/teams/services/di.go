package teams_services

import (
	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	teams_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/teams/interfaces"
	teams_repositories "github.com/Betocasasa/projecthub-backend/internal/features/teams/repositories"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
)

var teamRepository = &teams_repositories.TeamRepository{}
var membershipRepository = &teams_repositories.MembershipRepository{}

var teamService = &TeamService{
	teamRepository,
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	users_services.GetSettingsService(),
	[]teams_interfaces.TeamDeletionListener{},
}

var membershipService = &MembershipService{
	membershipRepository,
	teamRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	teamService,
	users_services.GetSettingsService(),
}

func GetTeamService() *TeamService {
	return teamService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
