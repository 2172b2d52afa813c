package projects_models

import (
	users_enums "teamboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// Roster is the membership snapshot of one project that policy rules
// evaluate against. Version mirrors the project's roster version at
// fetch time; a non-empty roster always contains at least one admin.
type Roster struct {
	ProjectID        uuid.UUID
	Version          int64
	LeadMembershipID *uuid.UUID
	Members          []Member
}

func (r *Roster) AdminCount() int {
	count := 0
	for i := range r.Members {
		if r.Members[i].IsAdmin() {
			count++
		}
	}

	return count
}

func (r *Roster) FindMember(membershipID uuid.UUID) *Member {
	for i := range r.Members {
		if r.Members[i].ID == membershipID {
			return &r.Members[i]
		}
	}

	return nil
}

func (r *Roster) FindMemberByUser(userID uuid.UUID) *Member {
	for i := range r.Members {
		if r.Members[i].UserID == userID {
			return &r.Members[i]
		}
	}

	return nil
}

func (r *Roster) HasUser(userID uuid.UUID) bool {
	return r.FindMemberByUser(userID) != nil
}

func (r *Roster) IsLead(membershipID uuid.UUID) bool {
	return r.LeadMembershipID != nil && *r.LeadMembershipID == membershipID
}

func (r *Roster) Clone() *Roster {
	clone := &Roster{
		ProjectID: r.ProjectID,
		Version:   r.Version,
		Members:   make([]Member, len(r.Members)),
	}

	if r.LeadMembershipID != nil {
		lead := *r.LeadMembershipID
		clone.LeadMembershipID = &lead
	}

	copy(clone.Members, r.Members)

	return clone
}

// WithoutMember returns a copy of the roster minus the given membership.
func (r *Roster) WithoutMember(membershipID uuid.UUID) *Roster {
	clone := r.Clone()
	members := clone.Members[:0]
	for _, member := range clone.Members {
		if member.ID != membershipID {
			members = append(members, member)
		}
	}
	clone.Members = members

	return clone
}

// WithMemberRole returns a copy of the roster with the member's role
// replaced.
func (r *Roster) WithMemberRole(membershipID uuid.UUID, role users_enums.ProjectRole) *Roster {
	clone := r.Clone()
	if member := clone.FindMember(membershipID); member != nil {
		member.Role = role
	}

	return clone
}
