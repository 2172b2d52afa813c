package projects_policy

import (
	projects_models "teamboard/internal/features/projects/models"
	users_enums "teamboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// Decision is the outcome of evaluating a proposed roster mutation.
// Evaluation is pure: same roster and proposal, same decision.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason, message string) Decision {
	return Decision{Allowed: false, Reason: reason, Message: message}
}

// Err converts a denying decision into a DenialError; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	return &DenialError{Reason: d.Reason, Message: d.Message}
}

// CanChangeRole decides whether a member's role may be changed. The
// one real rule: a project must never lose its last admin, so demoting
// the sole admin is denied.
func CanChangeRole(
	roster *projects_models.Roster,
	membershipID uuid.UUID,
	newRole users_enums.ProjectRole,
) Decision {
	member := roster.FindMember(membershipID)
	if member == nil {
		return Deny(ReasonMemberNotFound, "Member not found in project roster")
	}

	if member.IsAdmin() && newRole == users_enums.ProjectRoleMember && roster.AdminCount() == 1 {
		return Deny(ReasonSoleAdminDemotion, "Cannot demote the sole project admin")
	}

	return Allow()
}

// CanRemove decides whether a member may be removed. Removing the sole
// admin is denied; removing the project lead is denied when no other
// admin exists to take over the lead designation. Since the last
// remaining member is always an admin under the roster invariant, the
// sole-admin rule also prevents emptying the roster.
func CanRemove(roster *projects_models.Roster, membershipID uuid.UUID) Decision {
	member := roster.FindMember(membershipID)
	if member == nil {
		return Deny(ReasonMemberNotFound, "Member not found in project roster")
	}

	if member.IsAdmin() && roster.AdminCount() == 1 {
		return Deny(ReasonSoleAdminRemoval, "Cannot remove the sole project admin")
	}

	if roster.IsLead(membershipID) && LeadSuccessor(roster, membershipID) == nil {
		return Deny(
			ReasonLeadReassignmentUnavailable,
			"Cannot remove the project lead: no admin is available to take over",
		)
	}

	return Allow()
}

// LeadSuccessor picks the admin who inherits the lead designation when
// the current lead leaves or is demoted: the longest-tenured admin
// other than the excluded membership. Returns nil when no candidate
// exists.
func LeadSuccessor(roster *projects_models.Roster, excludeMembershipID uuid.UUID) *uuid.UUID {
	var successor *projects_models.Member

	for i := range roster.Members {
		member := &roster.Members[i]
		if member.ID == excludeMembershipID || !member.IsAdmin() {
			continue
		}

		if successor == nil || member.CreatedAt.Before(successor.CreatedAt) {
			successor = member
		}
	}

	if successor == nil {
		return nil
	}

	id := successor.ID

	return &id
}
