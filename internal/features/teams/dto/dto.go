package teams_dto

import (
	"time"

	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type AddMemberStatus string

const (
	AddStatusInvited AddMemberStatus = "INVITED"
	AddStatusAdded   AddMemberStatus = "ADDED"
)

// Team DTOs
type CreateTeamRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateTeamRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type TeamResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`

	// User's role in this team (populated when fetching for specific user)
	UserRole *users_enums.TeamRole `json:"userRole,omitempty"`
}

type ListTeamsResponseDTO struct {
	Teams []TeamResponseDTO `json:"teams"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	Email string               `json:"email" binding:"required,email"`
	Role  users_enums.TeamRole `json:"role"  binding:"required"`
}

type AddMemberResponseDTO struct {
	Status AddMemberStatus `json:"status"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.TeamRole `json:"role" binding:"required"`
}

type TransferOwnershipRequestDTO struct {
	NewOwnerEmail string `json:"newOwnerEmail" binding:"required,email"`
}

type TeamMemberResponseDTO struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"userId"`
	Email     string               `json:"email"` // Populated from user join
	Name      string               `json:"name"`  // Populated from user join
	Role      users_enums.TeamRole `json:"role"`
	CreatedAt time.Time            `json:"createdAt"`
}

type GetMembersResponseDTO struct {
	Members []TeamMemberResponseDTO `json:"members"`
}
