package users_testing

import (
	users_repositories "github.com/Betocasasa/projecthub-backend/internal/features/users/repositories"
)

func EnableMemberInvitations() {
	updateWorkspaceSetting("is_allow_member_invitations", true)
}

func DisableMemberInvitations() {
	updateWorkspaceSetting("is_allow_member_invitations", false)
}

func EnableExternalRegistrations() {
	updateWorkspaceSetting("is_allow_external_registrations", true)
}

func DisableExternalRegistrations() {
	updateWorkspaceSetting("is_allow_external_registrations", false)
}

func EnableMemberTeamCreation() {
	updateWorkspaceSetting("is_member_allowed_to_create_teams", true)
}

func DisableMemberTeamCreation() {
	updateWorkspaceSetting("is_member_allowed_to_create_teams", false)
}

func SetMessageRetentionDays(days int) {
	repository := &users_repositories.WorkspaceSettingsRepository{}
	settings, err := repository.GetSettings()
	if err != nil {
		panic(err)
	}

	settings.MessageRetentionDays = days

	if err := repository.UpdateSettings(settings); err != nil {
		panic(err)
	}
}

func ResetSettingsToDefaults() {
	repository := &users_repositories.WorkspaceSettingsRepository{}
	settings, err := repository.GetSettings()
	if err != nil {
		panic(err)
	}

	settings.IsAllowExternalRegistrations = true
	settings.IsAllowMemberInvitations = true
	settings.IsMemberAllowedToCreateTeams = true
	settings.MessageRetentionDays = 0

	err = repository.UpdateSettings(settings)
	if err != nil {
		panic(err)
	}
}

func updateWorkspaceSetting(column string, value bool) {
	repository := &users_repositories.WorkspaceSettingsRepository{}
	settings, err := repository.GetSettings()
	if err != nil {
		panic(err)
	}

	switch column {
	case "is_allow_member_invitations":
		settings.IsAllowMemberInvitations = value
	case "is_allow_external_registrations":
		settings.IsAllowExternalRegistrations = value
	case "is_member_allowed_to_create_teams":
		settings.IsMemberAllowedToCreateTeams = value
	}

	err = repository.UpdateSettings(settings)
	if err != nil {
		panic(err)
	}
}
