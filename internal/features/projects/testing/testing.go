package projects_testing

import (
	"sync"
	"time"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_interfaces "teamboard/internal/features/projects/interfaces"
	projects_models "teamboard/internal/features/projects/models"
	users_dto "teamboard/internal/features/users/dto"
	users_enums "teamboard/internal/features/users/enums"
	users_models "teamboard/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouterWithUser builds a router whose auth middleware
// injects the given user directly, so controller tests run without
// tokens or a database.
func CreateTestRouterWithUser(user *users_models.User, controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(func(ctx *gin.Context) {
		ctx.Set("user", user)
		ctx.Next()
	})

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

func NewTestUser(role users_enums.UserRole) *users_models.User {
	id := uuid.New()

	return &users_models.User{
		ID:        id,
		Email:     "user-" + id.String()[:8] + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Status:    users_enums.UserStatusActive,
	}
}

// NewRosterMember builds a roster member with a tenure offset so tests
// can control seniority ordering.
func NewRosterMember(
	projectID uuid.UUID,
	role users_enums.ProjectRole,
	tenure time.Duration,
) projects_models.Member {
	now := time.Now().UTC()

	return projects_models.Member{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ProjectID: projectID,
		Role:      role,
		CreatedAt: now.Add(-tenure),
		UpdatedAt: now,
	}
}

// FakeRosterRepository is an in-memory RosterRepository that enforces
// the same version compare-and-swap as the real one. Setting FetchErr
// makes FetchRoster fail, simulating a backing store outage.
type FakeRosterRepository struct {
	mu       sync.Mutex
	roster   *projects_models.Roster
	FetchErr error
}

var _ projects_interfaces.RosterRepository = (*FakeRosterRepository)(nil)

func NewFakeRosterRepository(roster *projects_models.Roster) *FakeRosterRepository {
	return &FakeRosterRepository{roster: roster.Clone()}
}

func (f *FakeRosterRepository) Roster() *projects_models.Roster {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.roster.Clone()
}

// BumpVersion simulates a concurrent writer winning a race.
func (f *FakeRosterRepository) BumpVersion() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.roster.Version++
}

func (f *FakeRosterRepository) FetchRoster(projectID uuid.UUID) (*projects_models.Roster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FetchErr != nil {
		return nil, f.FetchErr
	}

	return f.roster.Clone(), nil
}

func (f *FakeRosterRepository) GetProjectMembers(
	projectID uuid.UUID,
) ([]projects_dto.MemberResponseDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	members := make([]projects_dto.MemberResponseDTO, 0, len(f.roster.Members))
	for _, member := range f.roster.Members {
		members = append(members, projects_dto.MemberResponseDTO{
			ID:        member.ID,
			UserID:    member.UserID,
			Role:      member.Role,
			CreatedAt: member.CreatedAt,
			UpdatedAt: member.UpdatedAt,
		})
	}

	return members, nil
}

func (f *FakeRosterRepository) AppendMember(
	projectID uuid.UUID,
	expectedVersion int64,
	member *projects_models.Member,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if expectedVersion != f.roster.Version {
		return projects_interfaces.ErrStaleRoster
	}

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	if member.UpdatedAt.IsZero() {
		member.UpdatedAt = now
	}

	f.roster.Members = append(f.roster.Members, *member)
	f.roster.Version++

	return nil
}

func (f *FakeRosterRepository) UpdateMemberRole(
	projectID uuid.UUID,
	expectedVersion int64,
	membershipID uuid.UUID,
	role users_enums.ProjectRole,
	newLead *uuid.UUID,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if expectedVersion != f.roster.Version {
		return projects_interfaces.ErrStaleRoster
	}

	if member := f.roster.FindMember(membershipID); member != nil {
		member.Role = role
		member.UpdatedAt = time.Now().UTC()
	}

	if newLead != nil {
		lead := *newLead
		f.roster.LeadMembershipID = &lead
	}

	f.roster.Version++

	return nil
}

func (f *FakeRosterRepository) RemoveMember(
	projectID uuid.UUID,
	expectedVersion int64,
	membershipID uuid.UUID,
	newLead *uuid.UUID,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if expectedVersion != f.roster.Version {
		return projects_interfaces.ErrStaleRoster
	}

	members := make([]projects_models.Member, 0, len(f.roster.Members))
	for _, member := range f.roster.Members {
		if member.ID != membershipID {
			members = append(members, member)
		}
	}
	f.roster.Members = members

	if newLead != nil {
		lead := *newLead
		f.roster.LeadMembershipID = &lead
	}

	f.roster.Version++

	return nil
}

// FakeDirectorySource returns a fixed candidate list and records the
// last query it was asked for.
type FakeDirectorySource struct {
	Results   []users_dto.UserSummaryDTO
	LastQuery string
}

var _ projects_interfaces.DirectorySource = (*FakeDirectorySource)(nil)

func (f *FakeDirectorySource) RawSearch(query string) ([]users_dto.UserSummaryDTO, error) {
	f.LastQuery = query

	return f.Results, nil
}

// FakeUserLookup resolves users from a fixed map.
type FakeUserLookup struct {
	Users map[uuid.UUID]*users_models.User
}

var _ projects_interfaces.UserLookup = (*FakeUserLookup)(nil)

func NewFakeUserLookup(users ...*users_models.User) *FakeUserLookup {
	lookup := &FakeUserLookup{Users: make(map[uuid.UUID]*users_models.User)}
	for _, user := range users {
		lookup.Users[user.ID] = user
	}

	return lookup
}

func (f *FakeUserLookup) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return f.Users[userID], nil
}
