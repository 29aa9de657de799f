package users_models

import "github.com/google/uuid"

type WorkspaceSettings struct {
	ID uuid.UUID `json:"id"                           gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	// means that any user can register via the registration form without invitation
	IsAllowExternalRegistrations bool `json:"isAllowExternalRegistrations" gorm:"column:is_allow_external_registrations"`
	// means that any user with role MEMBER can invite other users
	IsAllowMemberInvitations bool `json:"isAllowMemberInvitations"     gorm:"column:is_allow_member_invitations"`
	// means that any user with role MEMBER can create their own teams
	IsMemberAllowedToCreateTeams bool `json:"isMemberAllowedToCreateTeams" gorm:"column:is_member_allowed_to_create_teams"`
	// chat messages older than this are pruned by the retention worker; 0 keeps them forever
	MessageRetentionDays int `json:"messageRetentionDays"         gorm:"column:message_retention_days"`
}

func (WorkspaceSettings) TableName() string {
	return "workspace_settings"
}
