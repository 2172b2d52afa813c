package projects_interfaces

import (
	"errors"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_models "teamboard/internal/features/projects/models"
	users_dto "teamboard/internal/features/users/dto"
	users_enums "teamboard/internal/features/users/enums"
	users_models "teamboard/internal/features/users/models"

	"github.com/google/uuid"
)

// ErrStaleRoster is returned by RosterRepository writes when the
// expected roster version lost a compare-and-swap against a concurrent
// mutation. Callers refetch and retry; the engine never retries itself.
var ErrStaleRoster = errors.New("roster version conflict")

// RosterRepository is the persistence collaborator for rosters. Every
// write is transactional and guarded by the project's roster version.
type RosterRepository interface {
	FetchRoster(projectID uuid.UUID) (*projects_models.Roster, error)
	GetProjectMembers(projectID uuid.UUID) ([]projects_dto.MemberResponseDTO, error)
	AppendMember(projectID uuid.UUID, expectedVersion int64, member *projects_models.Member) error
	UpdateMemberRole(
		projectID uuid.UUID,
		expectedVersion int64,
		membershipID uuid.UUID,
		role users_enums.ProjectRole,
		newLead *uuid.UUID,
	) error
	RemoveMember(
		projectID uuid.UUID,
		expectedVersion int64,
		membershipID uuid.UUID,
		newLead *uuid.UUID,
	) error
}

// DirectorySource supplies raw candidate lookups for the add-member
// picker; the membership feature filters members out on top of it.
type DirectorySource interface {
	RawSearch(query string) ([]users_dto.UserSummaryDTO, error)
}

// UserLookup resolves users referenced by membership mutations.
type UserLookup interface {
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
}
