package projects_services

import (
	"testing"
	"time"

	projects_models "teamboard/internal/features/projects/models"
	projects_policy "teamboard/internal/features/projects/policy"
	projects_store "teamboard/internal/features/projects/store"
	projects_testing "teamboard/internal/features/projects/testing"
	users_dto "teamboard/internal/features/users/dto"
	users_enums "teamboard/internal/features/users/enums"
	users_models "teamboard/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryFor(user *users_models.User) users_dto.UserSummaryDTO {
	return users_dto.UserSummaryDTO{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func newDirectoryServiceUnderTest(
	roster *projects_models.Roster,
	source *projects_testing.FakeDirectorySource,
) *DirectoryService {
	repository := projects_testing.NewFakeRosterRepository(roster)

	return NewDirectoryService(source, repository, projects_store.NewRosterStore())
}

func Test_SearchCandidates_NeverReturnsExistingRosterMembers(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	alreadyMember := projects_testing.NewTestUser(users_enums.UserRoleMember)
	candidate := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members: []projects_models.Member{
			membershipFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour),
			membershipFor(alreadyMember, projectID, users_enums.ProjectRoleMember, time.Minute),
		},
	}
	source := &projects_testing.FakeDirectorySource{
		Results: []users_dto.UserSummaryDTO{summaryFor(alreadyMember), summaryFor(candidate)},
	}
	service := newDirectoryServiceUnderTest(roster, source)

	response, err := service.SearchCandidates(projectID, "te", actor)

	require.NoError(t, err)
	require.Len(t, response.Candidates, 1)
	assert.Equal(t, candidate.ID, response.Candidates[0].UserID)
}

func Test_SearchCandidates_PreservesDirectoryOrdering(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	first := projects_testing.NewTestUser(users_enums.UserRoleMember)
	second := projects_testing.NewTestUser(users_enums.UserRoleMember)
	third := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{membershipFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)},
	}
	source := &projects_testing.FakeDirectorySource{
		Results: []users_dto.UserSummaryDTO{summaryFor(first), summaryFor(second), summaryFor(third)},
	}
	service := newDirectoryServiceUnderTest(roster, source)

	response, err := service.SearchCandidates(projectID, "user", actor)

	require.NoError(t, err)
	require.Len(t, response.Candidates, 3)
	assert.Equal(t, first.ID, response.Candidates[0].UserID)
	assert.Equal(t, second.ID, response.Candidates[1].UserID)
	assert.Equal(t, third.ID, response.Candidates[2].UserID)
	assert.Equal(t, "user", source.LastQuery)
}

func Test_SearchCandidates_WhenActorIsPlainMember_DeniedWithForbidden(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	admin := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members: []projects_models.Member{
			membershipFor(admin, projectID, users_enums.ProjectRoleAdmin, time.Hour),
			membershipFor(actor, projectID, users_enums.ProjectRoleMember, time.Minute),
		},
	}
	service := newDirectoryServiceUnderTest(roster, &projects_testing.FakeDirectorySource{})

	_, err := service.SearchCandidates(projectID, "te", actor)

	require.Error(t, err)

	denial, ok := err.(*projects_policy.DenialError)
	require.True(t, ok)
	assert.Equal(t, projects_policy.ReasonForbidden, denial.Reason)
}

func Test_SearchCandidates_WhenActorIsGlobalAdmin_Allowed(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleAdmin)
	admin := projects_testing.NewTestUser(users_enums.UserRoleMember)
	candidate := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{membershipFor(admin, projectID, users_enums.ProjectRoleAdmin, time.Hour)},
	}
	source := &projects_testing.FakeDirectorySource{Results: []users_dto.UserSummaryDTO{summaryFor(candidate)}}
	service := newDirectoryServiceUnderTest(roster, source)

	response, err := service.SearchCandidates(projectID, "te", actor)

	require.NoError(t, err)
	assert.Len(t, response.Candidates, 1)
}

func Test_SearchCandidates_WhenAllResultsAreRosterMembers_ReturnsEmptyList(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{membershipFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)},
	}
	source := &projects_testing.FakeDirectorySource{Results: []users_dto.UserSummaryDTO{summaryFor(actor)}}
	service := newDirectoryServiceUnderTest(roster, source)

	response, err := service.SearchCandidates(projectID, "te", actor)

	require.NoError(t, err)
	assert.Empty(t, response.Candidates)
}
