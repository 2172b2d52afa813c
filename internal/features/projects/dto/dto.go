package projects_dto

import (
	"time"

	users_dto "teamboard/internal/features/users/dto"
	users_enums "teamboard/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateProjectRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
}

type ProjectResponseDTO struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	CreatedAt time.Time                `json:"createdAt"`
	UserRole  *users_enums.ProjectRole `json:"userRole,omitempty"`
}

type GetProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

type AddMemberRequestDTO struct {
	UserID uuid.UUID                `json:"userId" binding:"required"`
	Role   *users_enums.ProjectRole `json:"role,omitempty"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.ProjectRole `json:"role" binding:"required"`
}

// MemberResponseDTO is a flat join of a membership row with its user's
// directory fields, shaped for the roster screen.
type MemberResponseDTO struct {
	ID        uuid.UUID               `json:"id" gorm:"column:id"`
	UserID    uuid.UUID               `json:"userId" gorm:"column:user_id"`
	Email     string                  `json:"email" gorm:"column:email"`
	FirstName string                  `json:"firstName" gorm:"column:first_name"`
	LastName  string                  `json:"lastName" gorm:"column:last_name"`
	AvatarURL *string                 `json:"avatarUrl,omitempty" gorm:"column:avatar_url"`
	Role      users_enums.ProjectRole `json:"role" gorm:"column:role"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time               `json:"updatedAt" gorm:"column:updated_at"`
}

type GetMembersResponseDTO struct {
	Members          []MemberResponseDTO `json:"members"`
	LeadMembershipID *uuid.UUID          `json:"leadMembershipId,omitempty"`
}

type SearchCandidatesResponseDTO struct {
	Candidates []users_dto.UserSummaryDTO `json:"candidates"`
}

// ErrorResponseDTO carries the stable reason code alongside the
// human-readable message for denied mutations.
type ErrorResponseDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
