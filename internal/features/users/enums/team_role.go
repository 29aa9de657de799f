package users_enums

type TeamRole string

const (
	TeamRoleOwner  TeamRole = "OWNER"
	TeamRoleAdmin  TeamRole = "TEAM_ADMIN"
	TeamRoleMember TeamRole = "TEAM_MEMBER"
)

// IsValid validates the TeamRole
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember:
		return true
	default:
		return false
	}
}
