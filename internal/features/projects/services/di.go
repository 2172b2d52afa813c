package projects_services

import (
	"teamboard/internal/cache"
	projects_models "teamboard/internal/features/projects/models"
	projects_repositories "teamboard/internal/features/projects/repositories"
	projects_store "teamboard/internal/features/projects/store"
	users_services "teamboard/internal/features/users/services"
	cache_utils "teamboard/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}
var rosterStore = projects_store.NewRosterStore()

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	users_services.GetSettingsService(),
	nil,
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "tb_project:"),
	singleflight.Group{},
}

var membershipService = NewMembershipService(
	membershipRepository,
	rosterStore,
	users_services.GetUserService(),
)

var directoryService = NewDirectoryService(
	users_services.GetUserService(),
	membershipRepository,
	rosterStore,
)

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetDirectoryService() *DirectoryService {
	return directoryService
}
