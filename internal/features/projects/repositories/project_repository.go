package projects_repositories

import (
	"errors"
	"time"

	projects_models "teamboard/internal/features/projects/models"
	users_enums "teamboard/internal/features/users/enums"
	"teamboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

// CreateProjectWithAdmin creates a project and seeds the creator as its
// first admin and lead in a single transaction, so a project is never
// observable without an admin.
func (r *ProjectRepository) CreateProjectWithAdmin(
	project *projects_models.Project,
	creatorID uuid.UUID,
) (*projects_models.Member, error) {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	member := &projects_models.Member{
		ID:        uuid.New(),
		UserID:    creatorID,
		ProjectID: project.ID,
		Role:      users_enums.ProjectRoleAdmin,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.CreatedAt,
	}

	project.LeadMembershipID = &member.ID

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := storage.GetDb().Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("project_id = ?", projectID).
			Delete(&projects_models.Member{}).Error; err != nil {
			return err
		}

		return tx.Delete(&projects_models.Project{}, projectID).Error
	})
}
