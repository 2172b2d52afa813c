package projects_policy

import (
	"testing"
	"time"

	projects_models "teamboard/internal/features/projects/models"
	projects_testing "teamboard/internal/features/projects/testing"
	users_enums "teamboard/internal/features/users/enums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRoster(members ...projects_models.Member) *projects_models.Roster {
	return &projects_models.Roster{
		ProjectID: uuid.New(),
		Version:   1,
		Members:   members,
	}
}

func Test_CanChangeRole_WhenDemotingSoleAdmin_DeniedWithSoleAdminDemotion(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	member := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, time.Minute)
	roster := buildRoster(admin, member)

	decision := CanChangeRole(roster, admin.ID, users_enums.ProjectRoleMember)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonSoleAdminDemotion, decision.Reason)
}

func Test_CanChangeRole_WhenDemotingAdminWithAnotherAdminPresent_Allowed(t *testing.T) {
	projectID := uuid.New()
	adminA := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, 2*time.Hour)
	adminB := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(adminA, adminB)

	decision := CanChangeRole(roster, adminA.ID, users_enums.ProjectRoleMember)

	assert.True(t, decision.Allowed)
}

func Test_CanChangeRole_WhenDemotionsWouldEmptyAdmins_SecondDemotionDenied(t *testing.T) {
	projectID := uuid.New()
	adminA := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, 2*time.Hour)
	adminB := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(adminA, adminB)

	first := CanChangeRole(roster, adminA.ID, users_enums.ProjectRoleMember)
	require.True(t, first.Allowed)

	afterFirst := roster.WithMemberRole(adminA.ID, users_enums.ProjectRoleMember)

	second := CanChangeRole(afterFirst, adminB.ID, users_enums.ProjectRoleMember)

	assert.False(t, second.Allowed)
	assert.Equal(t, ReasonSoleAdminDemotion, second.Reason)
}

func Test_CanChangeRole_WhenPromotingMemberToAdmin_Allowed(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	member := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, time.Minute)
	roster := buildRoster(admin, member)

	decision := CanChangeRole(roster, member.ID, users_enums.ProjectRoleAdmin)

	assert.True(t, decision.Allowed)
}

func Test_CanChangeRole_WhenAssigningSameRole_Allowed(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(admin)

	decision := CanChangeRole(roster, admin.ID, users_enums.ProjectRoleAdmin)

	assert.True(t, decision.Allowed)
}

func Test_CanChangeRole_WhenMembershipUnknown_DeniedWithMemberNotFound(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(admin)

	decision := CanChangeRole(roster, uuid.New(), users_enums.ProjectRoleMember)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonMemberNotFound, decision.Reason)
}

func Test_CanRemove_WhenRemovingSoleAdmin_DeniedWithSoleAdminRemoval(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	member := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, time.Minute)
	roster := buildRoster(admin, member)

	decision := CanRemove(roster, admin.ID)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonSoleAdminRemoval, decision.Reason)
}

func Test_CanRemove_WhenRemovingLastMember_DeniedWithSoleAdminRemoval(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(admin)

	decision := CanRemove(roster, admin.ID)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonSoleAdminRemoval, decision.Reason)
}

func Test_CanRemove_WhenRemovingMember_Allowed(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	member := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, time.Minute)
	roster := buildRoster(admin, member)

	decision := CanRemove(roster, member.ID)

	assert.True(t, decision.Allowed)
}

func Test_CanRemove_WhenRemovingAdminWithAnotherAdminPresent_Allowed(t *testing.T) {
	projectID := uuid.New()
	adminA := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, 2*time.Hour)
	adminB := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(adminA, adminB)

	decision := CanRemove(roster, adminA.ID)

	assert.True(t, decision.Allowed)
}

func Test_CanRemove_WhenRemovingLeadWithoutSuccessor_DeniedWithLeadReassignmentUnavailable(t *testing.T) {
	projectID := uuid.New()
	lead := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, 2*time.Hour)
	member := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, time.Hour)
	roster := buildRoster(lead, member)
	roster.LeadMembershipID = &lead.ID

	decision := CanRemove(roster, lead.ID)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonLeadReassignmentUnavailable, decision.Reason)
}

func Test_CanRemove_WhenRemovingLeadWithSuccessor_Allowed(t *testing.T) {
	projectID := uuid.New()
	lead := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, 2*time.Hour)
	other := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(lead, other)
	roster.LeadMembershipID = &lead.ID

	decision := CanRemove(roster, lead.ID)

	assert.True(t, decision.Allowed)
}

func Test_CanRemove_WhenMembershipUnknown_DeniedWithMemberNotFound(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := buildRoster(admin)

	decision := CanRemove(roster, uuid.New())

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonMemberNotFound, decision.Reason)
}

func Test_LeadSuccessor_PicksLongestTenuredOtherAdmin(t *testing.T) {
	projectID := uuid.New()
	lead := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, 3*time.Hour)
	oldest := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, 2*time.Hour)
	newest := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	member := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, 4*time.Hour)
	roster := buildRoster(lead, oldest, newest, member)
	roster.LeadMembershipID = &lead.ID

	successor := LeadSuccessor(roster, lead.ID)

	require.NotNil(t, successor)
	assert.Equal(t, oldest.ID, *successor)
}

func Test_LeadSuccessor_WhenNoOtherAdminExists_ReturnsNil(t *testing.T) {
	projectID := uuid.New()
	lead := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleAdmin, time.Hour)
	member := projects_testing.NewRosterMember(projectID, users_enums.ProjectRoleMember, time.Minute)
	roster := buildRoster(lead, member)
	roster.LeadMembershipID = &lead.ID

	assert.Nil(t, LeadSuccessor(roster, lead.ID))
}

func Test_DecisionErr_WhenDenied_ReturnsDenialErrorWithReason(t *testing.T) {
	decision := Deny(ReasonSoleAdminRemoval, "Cannot remove the sole project admin")

	err := decision.Err()

	require.Error(t, err)
	denial, ok := err.(*DenialError)
	require.True(t, ok)
	assert.Equal(t, ReasonSoleAdminRemoval, denial.Reason)
}

func Test_DecisionErr_WhenAllowed_ReturnsNil(t *testing.T) {
	assert.NoError(t, Allow().Err())
}
