package users_services

import (
	"errors"
	"fmt"

	users_dto "teamboard/internal/features/users/dto"
	users_enums "teamboard/internal/features/users/enums"
	users_interfaces "teamboard/internal/features/users/interfaces"
	users_models "teamboard/internal/features/users/models"
	users_repositories "teamboard/internal/features/users/repositories"

	"github.com/google/uuid"
)

type UserManagementService struct {
	userRepository *users_repositories.UserRepository
	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *UserManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserManagementService) GetUsers(
	request *users_dto.ListUsersRequestDTO,
	requestedBy *users_models.User,
) (*users_dto.ListUsersResponseDTO, error) {
	if !requestedBy.CanManageUsers() {
		return nil, errors.New("insufficient permissions to manage users")
	}

	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := max(request.Offset, 0)

	users, total, err := s.userRepository.GetUsers(limit, offset, request.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]users_dto.UserProfileResponseDTO, len(users))
	for i, user := range users {
		profiles[i] = users_dto.UserProfileResponseDTO{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			AvatarURL: user.AvatarURL,
			Role:      user.Role,
			IsActive:  user.IsActiveUser(),
			CreatedAt: user.CreatedAt,
		}
	}

	return &users_dto.ListUsersResponseDTO{
		Users: profiles,
		Total: total,
	}, nil
}

func (s *UserManagementService) ChangeUserStatus(
	targetUserID uuid.UUID,
	status users_enums.UserStatus,
	changedBy *users_models.User,
) error {
	if !changedBy.CanManageUsers() {
		return errors.New("insufficient permissions to manage users")
	}

	if targetUserID == changedBy.ID {
		return errors.New("cannot change your own status")
	}

	targetUser, err := s.userRepository.GetUserByID(targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if targetUser == nil {
		return errors.New("user not found")
	}

	if err := s.userRepository.UpdateUserStatus(targetUserID, status); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User status changed: %s to %s", targetUser.Email, status),
		&changedBy.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) ChangeUserRole(
	targetUserID uuid.UUID,
	role users_enums.UserRole,
	changedBy *users_models.User,
) error {
	if !changedBy.CanManageUsers() {
		return errors.New("insufficient permissions to manage users")
	}

	if targetUserID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	targetUser, err := s.userRepository.GetUserByID(targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if targetUser == nil {
		return errors.New("user not found")
	}

	if err := s.userRepository.UpdateUserRole(targetUserID, role); err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User role changed: %s from %s to %s", targetUser.Email, targetUser.Role, role),
		&changedBy.ID,
		nil,
	)

	return nil
}
