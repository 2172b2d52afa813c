package audit_logs

import (
	projects_services "teamboard/internal/features/projects/services"
	users_services "teamboard/internal/features/users/services"
	"teamboard/internal/util/logger"
)

var auditLogRepository = &AuditLogRepository{}
var auditLogService = &AuditLogService{
	auditLogRepository: auditLogRepository,
	logger:             logger.GetLogger(),
}
var auditLogController = &AuditLogController{
	auditLogService:      auditLogService,
	projectAccessChecker: projects_services.GetProjectService(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}

func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
	users_services.GetSettingsService().SetAuditLogWriter(auditLogService)
	users_services.GetManagementService().SetAuditLogWriter(auditLogService)
	projects_services.GetProjectService().SetAuditLogWriter(auditLogService)
	projects_services.GetMembershipService().SetAuditLogWriter(auditLogService)
}
