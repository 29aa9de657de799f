package users_dto

import (
	"time"

	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type RegisterRequestDTO struct {
	Name     string               `json:"name"     binding:"required"`
	Email    string               `json:"email"    binding:"required,email"`
	Password string               `json:"password" binding:"required,min=8"`
	Role     users_enums.UserRole `json:"role"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponseDTO is returned by both register and login.
type AuthResponseDTO struct {
	Token string                 `json:"token"`
	User  UserProfileResponseDTO `json:"user"`
}

type SetAdminPasswordRequestDTO struct {
	Password string `json:"password" binding:"required,min=8"`
}

type IsAdminHasPasswordResponseDTO struct {
	HasPassword bool `json:"hasPassword"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type InviteUserRequestDTO struct {
	Email            string                `json:"email"            binding:"required,email"`
	IntendedTeamID   *uuid.UUID            `json:"intendedTeamId"`
	IntendedTeamRole *users_enums.TeamRole `json:"intendedTeamRole"`
}

type InviteUserResponseDTO struct {
	ID               uuid.UUID             `json:"id"`
	Email            string                `json:"email"`
	IntendedTeamID   *uuid.UUID            `json:"intendedTeamId"`
	IntendedTeamRole *users_enums.TeamRole `json:"intendedTeamRole"`
	CreatedAt        time.Time             `json:"createdAt"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Role      users_enums.UserRole `json:"role"`
	IsActive  bool                 `json:"isActive"`
	CreatedAt time.Time            `json:"createdAt"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
	Total int64                    `json:"total"`
}

type ChangeUserRoleRequestDTO struct {
	Role users_enums.UserRole `json:"role" binding:"required"`
}

type ListUsersRequestDTO struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}
