package projects_models

import (
	"time"

	users_enums "teamboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// Member is one project membership. Its ID is the membership identity,
// distinct from the user it references; a user holds at most one
// membership per project.
type Member struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time               `json:"updatedAt" gorm:"column:updated_at"`
}

func (Member) TableName() string {
	return "project_memberships"
}

func (m *Member) IsAdmin() bool {
	return m.Role == users_enums.ProjectRoleAdmin
}
