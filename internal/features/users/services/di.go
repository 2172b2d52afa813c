package users_services

import (
	users_repositories "teamboard/internal/features/users/repositories"
)

var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var userRepository = &users_repositories.UserRepository{}
var usersSettingsRepository = &users_repositories.UsersSettingsRepository{}

var settingsService = &SettingsService{
	userSettingsRepository: usersSettingsRepository,
}
var userService = NewUserService(userRepository, secretKeyRepository, settingsService)
var managementService = &UserManagementService{
	userRepository: userRepository,
}

func GetUserService() *UserService {
	return userService
}

func GetSettingsService() *SettingsService {
	return settingsService
}

func GetManagementService() *UserManagementService {
	return managementService
}
