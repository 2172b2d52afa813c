package users_enums

// ProjectRole is a member's role within a single project, independent
// of the global UserRole.
type ProjectRole string

const (
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleMember ProjectRole = "MEMBER"
)

func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleAdmin, ProjectRoleMember:
		return true
	default:
		return false
	}
}
