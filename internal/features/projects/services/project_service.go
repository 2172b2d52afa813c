package projects_services

import (
	"fmt"
	"time"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_models "teamboard/internal/features/projects/models"
	projects_policy "teamboard/internal/features/projects/policy"
	projects_repositories "teamboard/internal/features/projects/repositories"
	users_enums "teamboard/internal/features/users/enums"
	users_interfaces "teamboard/internal/features/users/interfaces"
	users_models "teamboard/internal/features/users/models"
	users_services "teamboard/internal/features/users/services"
	cache_utils "teamboard/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository    *projects_repositories.ProjectRepository
	membershipRepository *projects_repositories.MembershipRepository
	settingsService      *users_services.SettingsService
	auditLogWriter       users_interfaces.AuditLogWriter

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if !creator.CanCreateProjects(settings) {
		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to create projects",
		)
	}

	project := &projects_models.Project{
		ID:        uuid.New(),
		Name:      request.Name,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.projectRepository.CreateProjectWithAdmin(project, creator.ID); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	s.writeAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&project.ID,
	)

	adminRole := users_enums.ProjectRoleAdmin
	return &projects_dto.ProjectResponseDTO{
		ID:        project.ID,
		Name:      project.Name,
		CreatedAt: project.CreatedAt,
		UserRole:  &adminRole,
	}, nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID, user *users_models.User) (*projects_models.Project, error) {
	canAccess, _, err := s.CanUserAccessProject(projectID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to view project",
		)
	}

	return s.GetProjectWithCache(projectID)
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.GetProjectsResponseDTO, error) {
	projects, err := s.membershipRepository.GetProjectsWithRolesByUserID(user.Role, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.GetProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	canManage, err := s.CanUserManageProject(projectID, user)
	if err != nil {
		return err
	}
	if !canManage {
		return projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to delete project",
		)
	}

	project, err := s.GetProjectWithCache(projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.writeAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&projectID,
	)

	return nil
}

func (s *ProjectService) CanUserAccessProject(
	projectID uuid.UUID,
	user *users_models.User,
) (bool, *users_enums.ProjectRole, error) {
	if user.Role == users_enums.UserRoleAdmin {
		adminRole := users_enums.ProjectRoleAdmin
		return true, &adminRole, nil
	}

	roster, err := s.membershipRepository.FetchRoster(projectID)
	if err != nil {
		return false, nil, err
	}

	member := roster.FindMemberByUser(user.ID)
	if member == nil {
		return false, nil, nil
	}

	return true, &member.Role, nil
}

func (s *ProjectService) CanUserManageProject(projectID uuid.UUID, user *users_models.User) (bool, error) {
	if user.Role == users_enums.UserRoleAdmin {
		return true, nil
	}

	canAccess, role, err := s.CanUserAccessProject(projectID, user)
	if err != nil {
		return false, err
	}
	if !canAccess || role == nil {
		return false, nil
	}

	return *role == users_enums.ProjectRoleAdmin, nil
}

func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	// Tier 1: Check cache
	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, projects_policy.NewDenialError(
				projects_policy.ReasonProjectNotFound,
				"Project not found",
			)
		}

		return cachedProject, nil
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, ok := result.(*projects_models.Project)
	if !ok || project == nil {
		// Cache the invalid project to prevent future DB hits
		invalidCachedProject := &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		}
		s.projectCacheUtil.Set(projectIDStr, invalidCachedProject)

		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonProjectNotFound,
			"Project not found",
		)
	}

	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

func (s *ProjectService) writeAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, projectID)
	}
}
