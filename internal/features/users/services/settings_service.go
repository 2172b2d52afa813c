package users_services

import (
	"errors"
	"fmt"

	users_dto "teamboard/internal/features/users/dto"
	users_interfaces "teamboard/internal/features/users/interfaces"
	users_models "teamboard/internal/features/users/models"
	users_repositories "teamboard/internal/features/users/repositories"
)

type SettingsService struct {
	userSettingsRepository *users_repositories.UsersSettingsRepository
	auditLogWriter         users_interfaces.AuditLogWriter
}

func (s *SettingsService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *SettingsService) GetSettings() (*users_models.UsersSettings, error) {
	return s.userSettingsRepository.GetSettings()
}

func (s *SettingsService) UpdateSettings(
	request *users_dto.UpdateSettingsRequestDTO,
	updatedBy *users_models.User,
) (*users_models.UsersSettings, error) {
	if !updatedBy.CanUpdateSettings() {
		return nil, errors.New("insufficient permissions to update settings")
	}

	settings := &users_models.UsersSettings{
		IsAllowExternalRegistrations:    request.IsAllowExternalRegistrations,
		IsMemberAllowedToCreateProjects: request.IsMemberAllowedToCreateProjects,
	}

	if err := s.userSettingsRepository.UpdateSettings(settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.auditLogWriter.WriteAuditLog("Workspace settings updated", &updatedBy.ID, nil)

	return settings, nil
}
