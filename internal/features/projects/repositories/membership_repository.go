package projects_repositories

import (
	"time"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_interfaces "teamboard/internal/features/projects/interfaces"
	projects_models "teamboard/internal/features/projects/models"
	users_enums "teamboard/internal/features/users/enums"
	"teamboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipRepository persists rosters. Every mutation runs in a
// transaction that bumps the project's roster version with a
// compare-and-swap on the expected version; a lost swap surfaces as
// ErrStaleRoster and writes nothing.
type MembershipRepository struct{}

var _ projects_interfaces.RosterRepository = (*MembershipRepository)(nil)

func (r *MembershipRepository) FetchRoster(projectID uuid.UUID) (*projects_models.Roster, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	var members []projects_models.Member

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	return &projects_models.Roster{
		ProjectID:        projectID,
		Version:          project.RosterVersion,
		LeadMembershipID: project.LeadMembershipID,
		Members:          members,
	}, nil
}

func (r *MembershipRepository) GetProjectMembers(
	projectID uuid.UUID,
) ([]projects_dto.MemberResponseDTO, error) {
	members := make([]projects_dto.MemberResponseDTO, 0)

	err := storage.GetDb().
		Table("project_memberships pm").
		Select("pm.id, pm.user_id, u.email, u.first_name, u.last_name, u.avatar_url, pm.role, pm.created_at, pm.updated_at").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order("pm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) AppendMember(
	projectID uuid.UUID,
	expectedVersion int64,
	member *projects_models.Member,
) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	if member.UpdatedAt.IsZero() {
		member.UpdatedAt = now
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := bumpRosterVersion(tx, projectID, expectedVersion, nil); err != nil {
			return err
		}

		return tx.Create(member).Error
	})
}

func (r *MembershipRepository) UpdateMemberRole(
	projectID uuid.UUID,
	expectedVersion int64,
	membershipID uuid.UUID,
	role users_enums.ProjectRole,
	newLead *uuid.UUID,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := bumpRosterVersion(tx, projectID, expectedVersion, newLead); err != nil {
			return err
		}

		return tx.
			Model(&projects_models.Member{}).
			Where("id = ? AND project_id = ?", membershipID, projectID).
			Updates(map[string]any{
				"role":       role,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

func (r *MembershipRepository) RemoveMember(
	projectID uuid.UUID,
	expectedVersion int64,
	membershipID uuid.UUID,
	newLead *uuid.UUID,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := bumpRosterVersion(tx, projectID, expectedVersion, newLead); err != nil {
			return err
		}

		return tx.
			Where("id = ? AND project_id = ?", membershipID, projectID).
			Delete(&projects_models.Member{}).Error
	})
}

func (r *MembershipRepository) GetProjectsWithRolesByUserID(
	userRole users_enums.UserRole,
	userID uuid.UUID,
) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	if userRole == users_enums.UserRoleAdmin {
		err := storage.GetDb().Table("projects").Order("name ASC").Scan(&results).Error
		return results, err
	}

	err := storage.GetDb().
		Table("projects p").
		Select("p.id, p.name, p.created_at, pm.role as user_role").
		Joins("JOIN project_memberships pm ON p.id = pm.project_id").
		Where("pm.user_id = ?", userID).
		Order("p.name ASC").
		Scan(&results).Error

	return results, err
}

// bumpRosterVersion is the concurrency gate for all roster writes: the
// version only advances when it still matches what the caller read, and
// the lead designation moves in the same statement when requested.
func bumpRosterVersion(
	tx *gorm.DB,
	projectID uuid.UUID,
	expectedVersion int64,
	newLead *uuid.UUID,
) error {
	updates := map[string]any{"roster_version": gorm.Expr("roster_version + 1")}
	if newLead != nil {
		updates["lead_membership_id"] = *newLead
	}

	result := tx.
		Model(&projects_models.Project{}).
		Where("id = ? AND roster_version = ?", projectID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return projects_interfaces.ErrStaleRoster
	}

	return nil
}
