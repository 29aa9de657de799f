package teams_controllers

import (
	teams_services "github.com/Betocasasa/projecthub-backend/internal/features/teams/services"
)

var teamController = &TeamController{
	teams_services.GetTeamService(),
}

var membershipController = &MembershipController{
	teams_services.GetMembershipService(),
}

func GetTeamController() *TeamController {
	return teamController
}

func GetMembershipController() *MembershipController {
	return membershipController
}
