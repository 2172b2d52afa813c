package projects_store

import (
	"sync"

	projects_models "teamboard/internal/features/projects/models"

	"github.com/google/uuid"
)

// RosterStore holds the in-memory roster snapshot per project that
// policy evaluation runs against. It is a plain data holder: no
// validation lives here, and snapshots are cloned on the way in and
// out so callers can never mutate shared state.
type RosterStore struct {
	mu      sync.RWMutex
	rosters map[uuid.UUID]*projects_models.Roster
}

func NewRosterStore() *RosterStore {
	return &RosterStore{
		rosters: make(map[uuid.UUID]*projects_models.Roster),
	}
}

func (s *RosterStore) Get(projectID uuid.UUID) (*projects_models.Roster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster, ok := s.rosters[projectID]
	if !ok {
		return nil, false
	}

	return roster.Clone(), true
}

func (s *RosterStore) Replace(projectID uuid.UUID, roster *projects_models.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rosters[projectID] = roster.Clone()
}

func (s *RosterStore) Invalidate(projectID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rosters, projectID)
}
