package users_models

import "github.com/google/uuid"

type UsersSettings struct {
	ID                              uuid.UUID `json:"id"`
	IsAllowExternalRegistrations    bool      `json:"isAllowExternalRegistrations"    gorm:"column:is_allow_external_registrations"`
	IsMemberAllowedToCreateProjects bool      `json:"isMemberAllowedToCreateProjects" gorm:"column:is_member_allowed_to_create_projects"`
}

func (UsersSettings) TableName() string {
	return "users_settings"
}
