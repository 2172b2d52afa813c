package projects_controllers

import (
	projects_services "teamboard/internal/features/projects/services"
	rate_limit "teamboard/internal/util/rate_limit"
)

var projectController = &ProjectController{
	projects_services.GetProjectService(),
}

var membershipController = &MembershipController{
	projects_services.GetMembershipService(),
	projects_services.GetDirectoryService(),
	rate_limit.NewRateLimiter(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetMembershipController() *MembershipController {
	return membershipController
}
