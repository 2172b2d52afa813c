package users_dto

import (
	"time"

	users_enums "teamboard/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string `json:"lastName"  binding:"required,min=1,max=100"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type UpdateProfileRequestDTO struct {
	FirstName string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string  `json:"lastName"  binding:"required,min=1,max=100"`
	AvatarURL *string `json:"avatarUrl"`
}

// UserSummaryDTO is the read-only user projection embedded in rosters
// and returned by the directory search.
type UserSummaryDTO struct {
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	Email     string    `json:"email"     gorm:"column:email"`
	FirstName string    `json:"firstName" gorm:"column:first_name"`
	LastName  string    `json:"lastName"  gorm:"column:last_name"`
	AvatarURL *string   `json:"avatarUrl" gorm:"column:avatar_url"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID            `json:"id"`
	Email     string               `json:"email"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	AvatarURL *string              `json:"avatarUrl"`
	Role      users_enums.UserRole `json:"role"`
	IsActive  bool                 `json:"isActive"`
	CreatedAt time.Time            `json:"createdAt"`
}

type ListUsersRequestDTO struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
	Total int64                    `json:"total"`
}

type ChangeUserRoleRequestDTO struct {
	Role users_enums.UserRole `json:"role" binding:"required"`
}

type ChangeUserStatusRequestDTO struct {
	Status users_enums.UserStatus `json:"status" binding:"required"`
}

type UpdateSettingsRequestDTO struct {
	IsAllowExternalRegistrations    bool `json:"isAllowExternalRegistrations"`
	IsMemberAllowedToCreateProjects bool `json:"isMemberAllowedToCreateProjects"`
}
