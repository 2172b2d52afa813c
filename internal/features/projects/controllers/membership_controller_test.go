package projects_controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_models "teamboard/internal/features/projects/models"
	projects_services "teamboard/internal/features/projects/services"
	projects_store "teamboard/internal/features/projects/store"
	projects_testing "teamboard/internal/features/projects/testing"
	users_dto "teamboard/internal/features/users/dto"
	users_enums "teamboard/internal/features/users/enums"
	users_models "teamboard/internal/features/users/models"
	test_utils "teamboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unmarshalBody(resp *test_utils.Response, out any) error {
	return json.Unmarshal(resp.Body, out)
}

func newMembershipTestRouter(
	actor *users_models.User,
	roster *projects_models.Roster,
	directoryResults []users_dto.UserSummaryDTO,
	targets ...*users_models.User,
) (*gin.Engine, *projects_testing.FakeRosterRepository) {
	repository := projects_testing.NewFakeRosterRepository(roster)
	store := projects_store.NewRosterStore()

	controller := &MembershipController{
		membershipService: projects_services.NewMembershipService(
			repository,
			store,
			projects_testing.NewFakeUserLookup(targets...),
		),
		directoryService: projects_services.NewDirectoryService(
			&projects_testing.FakeDirectorySource{Results: directoryResults},
			repository,
			store,
		),
	}

	return projects_testing.CreateTestRouterWithUser(actor, controller), repository
}

func rosterMemberFor(
	user *users_models.User,
	projectID uuid.UUID,
	role users_enums.ProjectRole,
	tenure time.Duration,
) projects_models.Member {
	member := projects_testing.NewRosterMember(projectID, role, tenure)
	member.UserID = user.ID

	return member
}

func Test_ChangeMemberRole_WhenDemotingSoleAdmin_ReturnsConflictWithReasonCode(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	actorMembership := rosterMemberFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{actorMembership},
	}
	router, _ := newMembershipTestRouter(actor, roster, nil)

	request := projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleMember}

	var response projects_dto.ErrorResponseDTO
	resp := test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members/"+actorMembership.ID.String()+"/role",
		"Bearer test",
		request,
		http.StatusConflict,
	)
	require.NoError(t, unmarshalBody(resp, &response))

	assert.Equal(t, "SOLE_ADMIN_DEMOTION", response.Code)
	assert.NotEmpty(t, response.Message)
}

func Test_RemoveMember_WhenMembershipUnknown_ReturnsNotFoundWithReasonCode(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{rosterMemberFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)},
	}
	router, _ := newMembershipTestRouter(actor, roster, nil)

	var response projects_dto.ErrorResponseDTO
	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members/"+uuid.New().String(),
		"Bearer test",
		http.StatusNotFound,
	)
	require.NoError(t, unmarshalBody(resp, &response))

	assert.Equal(t, "MEMBER_NOT_FOUND", response.Code)
}

func Test_AddMember_WhenActorIsPlainMember_ReturnsForbiddenWithReasonCode(t *testing.T) {
	projectID := uuid.New()
	admin := projects_testing.NewTestUser(users_enums.UserRoleMember)
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	target := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members: []projects_models.Member{
			rosterMemberFor(admin, projectID, users_enums.ProjectRoleAdmin, time.Hour),
			rosterMemberFor(actor, projectID, users_enums.ProjectRoleMember, time.Minute),
		},
	}
	router, _ := newMembershipTestRouter(actor, roster, nil, target)

	request := projects_dto.AddMemberRequestDTO{UserID: target.ID}

	var response projects_dto.ErrorResponseDTO
	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members",
		"Bearer test",
		request,
		http.StatusForbidden,
	)
	require.NoError(t, unmarshalBody(resp, &response))

	assert.Equal(t, "FORBIDDEN", response.Code)
}

func Test_AddMember_WhenRequestValid_ReturnsCreatedMember(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	target := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{rosterMemberFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)},
	}
	router, repository := newMembershipTestRouter(actor, roster, nil, target)

	request := projects_dto.AddMemberRequestDTO{UserID: target.ID}

	var response projects_dto.MemberResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members",
		"Bearer test",
		request,
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, target.ID, response.UserID)
	assert.Equal(t, users_enums.ProjectRoleMember, response.Role)
	assert.True(t, repository.Roster().HasUser(target.ID))
}

func Test_ListMembers_ReturnsRosterWithLeadMembershipID(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	actorMembership := rosterMemberFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := &projects_models.Roster{
		ProjectID:        projectID,
		Version:          1,
		LeadMembershipID: &actorMembership.ID,
		Members:          []projects_models.Member{actorMembership},
	}
	router, _ := newMembershipTestRouter(actor, roster, nil)

	var response projects_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members",
		"Bearer test",
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Members, 1)
	require.NotNil(t, response.LeadMembershipID)
	assert.Equal(t, actorMembership.ID, *response.LeadMembershipID)
}

func Test_ListMembers_WhenRosterFetchFails_ReturnsOpaqueInternalError(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{rosterMemberFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)},
	}
	router, repository := newMembershipTestRouter(actor, roster, nil)
	repository.FetchErr = errors.New("dial tcp 10.0.0.5:5432: connection refused")

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members",
		"Bearer test",
		http.StatusInternalServerError,
	)

	assert.Contains(t, string(resp.Body), "Internal server error")
	assert.NotContains(t, string(resp.Body), "connection refused")
}

func Test_SearchCandidates_WithShortQuery_ReturnsBadRequest(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{rosterMemberFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)},
	}
	router, _ := newMembershipTestRouter(actor, roster, nil)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members/search?query=a",
		"Bearer test",
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "at least 2 characters")
}

func Test_ChangeMemberRole_WithInvalidRole_ReturnsBadRequest(t *testing.T) {
	projectID := uuid.New()
	actor := projects_testing.NewTestUser(users_enums.UserRoleMember)
	actorMembership := rosterMemberFor(actor, projectID, users_enums.ProjectRoleAdmin, time.Hour)
	roster := &projects_models.Roster{
		ProjectID: projectID,
		Version:   1,
		Members:   []projects_models.Member{actorMembership},
	}
	router, _ := newMembershipTestRouter(actor, roster, nil)

	resp := test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/projects/"+projectID.String()+"/members/"+actorMembership.ID.String()+"/role",
		"Bearer test",
		map[string]string{"role": "OWNER"},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid role")
}
