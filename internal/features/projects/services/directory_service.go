package projects_services

import (
	"fmt"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_interfaces "teamboard/internal/features/projects/interfaces"
	projects_policy "teamboard/internal/features/projects/policy"
	projects_store "teamboard/internal/features/projects/store"
	users_dto "teamboard/internal/features/users/dto"
	users_enums "teamboard/internal/features/users/enums"
	users_models "teamboard/internal/features/users/models"

	"github.com/google/uuid"
)

// DirectoryService backs the add-member picker: it searches the user
// directory and filters out users already on the project roster,
// preserving the directory's ranking order.
type DirectoryService struct {
	directorySource  projects_interfaces.DirectorySource
	rosterRepository projects_interfaces.RosterRepository
	rosterStore      *projects_store.RosterStore
}

func NewDirectoryService(
	directorySource projects_interfaces.DirectorySource,
	rosterRepository projects_interfaces.RosterRepository,
	rosterStore *projects_store.RosterStore,
) *DirectoryService {
	return &DirectoryService{
		directorySource:  directorySource,
		rosterRepository: rosterRepository,
		rosterStore:      rosterStore,
	}
}

func (s *DirectoryService) SearchCandidates(
	projectID uuid.UUID,
	query string,
	user *users_models.User,
) (*projects_dto.SearchCandidatesResponseDTO, error) {
	roster, err := loadRoster(s.rosterStore, s.rosterRepository, projectID)
	if err != nil {
		return nil, err
	}

	isProjectAdmin := false
	if member := roster.FindMemberByUser(user.ID); member != nil && member.IsAdmin() {
		isProjectAdmin = true
	}

	if user.Role != users_enums.UserRoleAdmin && !isProjectAdmin {
		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to search member candidates",
		)
	}

	results, err := s.directorySource.RawSearch(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	candidates := make([]users_dto.UserSummaryDTO, 0, len(results))
	for _, candidate := range results {
		if roster.HasUser(candidate.UserID) {
			continue
		}

		candidates = append(candidates, candidate)
	}

	return &projects_dto.SearchCandidatesResponseDTO{
		Candidates: candidates,
	}, nil
}
