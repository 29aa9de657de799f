package users_services

import (
	user_repositories "github.com/Betocasasa/projecthub-backend/internal/features/users/repositories"
)

var secretKeyRepository = &user_repositories.SecretKeyRepository{}
var userRepository = &user_repositories.UserRepository{}
var workspaceSettingsRepository = &user_repositories.WorkspaceSettingsRepository{}

var userService = &UserService{
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
	settingsService:     settingsService,
}
var settingsService = &SettingsService{
	settingsRepository: workspaceSettingsRepository,
}
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
