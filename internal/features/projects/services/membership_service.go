package projects_services

import (
	"errors"
	"fmt"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_interfaces "teamboard/internal/features/projects/interfaces"
	projects_models "teamboard/internal/features/projects/models"
	projects_policy "teamboard/internal/features/projects/policy"
	projects_store "teamboard/internal/features/projects/store"
	users_enums "teamboard/internal/features/users/enums"
	users_interfaces "teamboard/internal/features/users/interfaces"
	users_models "teamboard/internal/features/users/models"

	"github.com/google/uuid"
)

// MembershipService coordinates roster mutations: it loads the roster
// snapshot, asks the policy rules for a decision, and applies allowed
// mutations through the repository's version-guarded writes. A lost
// version race invalidates the snapshot and surfaces as STALE_ROSTER;
// the caller decides whether to retry.
type MembershipService struct {
	rosterRepository projects_interfaces.RosterRepository
	rosterStore      *projects_store.RosterStore
	userLookup       projects_interfaces.UserLookup
	auditLogWriter   users_interfaces.AuditLogWriter
}

func NewMembershipService(
	rosterRepository projects_interfaces.RosterRepository,
	rosterStore *projects_store.RosterStore,
	userLookup projects_interfaces.UserLookup,
) *MembershipService {
	return &MembershipService{
		rosterRepository: rosterRepository,
		rosterStore:      rosterStore,
		userLookup:       userLookup,
	}
}

func (s *MembershipService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *MembershipService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	roster, err := loadRoster(s.rosterStore, s.rosterRepository, projectID)
	if err != nil {
		return nil, err
	}

	if !s.canViewRoster(roster, user) {
		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to view project members",
		)
	}

	members, err := s.rosterRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	return &projects_dto.GetMembersResponseDTO{
		Members:          members,
		LeadMembershipID: roster.LeadMembershipID,
	}, nil
}

func (s *MembershipService) AddMember(
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.MemberResponseDTO, error) {
	roster, err := loadRoster(s.rosterStore, s.rosterRepository, projectID)
	if err != nil {
		return nil, err
	}

	if !s.canManageRoster(roster, addedBy) {
		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to manage project members",
		)
	}

	if roster.HasUser(request.UserID) {
		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonAlreadyMember,
			"User is already a member of this project",
		)
	}

	targetUser, err := s.userLookup.GetUserByID(request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if targetUser == nil || !targetUser.IsActiveUser() {
		return nil, projects_policy.NewDenialError(
			projects_policy.ReasonUserNotFound,
			"User not found or inactive",
		)
	}

	role := users_enums.ProjectRoleMember
	if request.Role != nil {
		role = *request.Role
	}

	member := &projects_models.Member{
		UserID:    request.UserID,
		ProjectID: projectID,
		Role:      role,
	}

	if err := s.rosterRepository.AppendMember(projectID, roster.Version, member); err != nil {
		return nil, s.handleWriteError(projectID, err, "failed to add member")
	}

	updated := roster.Clone()
	updated.Version++
	updated.Members = append(updated.Members, *member)
	s.rosterStore.Replace(projectID, updated)

	s.writeAuditLog(
		fmt.Sprintf("User added to project as %s: %s", role, targetUser.Email),
		&addedBy.ID,
		&projectID,
	)

	return &projects_dto.MemberResponseDTO{
		ID:        member.ID,
		UserID:    member.UserID,
		Email:     targetUser.Email,
		FirstName: targetUser.FirstName,
		LastName:  targetUser.LastName,
		AvatarURL: targetUser.AvatarURL,
		Role:      member.Role,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}, nil
}

func (s *MembershipService) ChangeMemberRole(
	projectID uuid.UUID,
	membershipID uuid.UUID,
	newRole users_enums.ProjectRole,
	changedBy *users_models.User,
) error {
	roster, err := loadRoster(s.rosterStore, s.rosterRepository, projectID)
	if err != nil {
		return err
	}

	if !s.canManageRoster(roster, changedBy) {
		return projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to manage project members",
		)
	}

	decision := projects_policy.CanChangeRole(roster, membershipID, newRole)
	if err := decision.Err(); err != nil {
		return err
	}

	member := roster.FindMember(membershipID)
	if member.Role == newRole {
		// Assigning the role the member already holds is a no-op.
		return nil
	}

	// Demoting the lead hands the designation to the longest-tenured
	// remaining admin; the policy guarantees one exists here.
	var newLead *uuid.UUID
	if roster.IsLead(membershipID) && newRole == users_enums.ProjectRoleMember {
		newLead = projects_policy.LeadSuccessor(roster, membershipID)
	}

	err = s.rosterRepository.UpdateMemberRole(projectID, roster.Version, membershipID, newRole, newLead)
	if err != nil {
		return s.handleWriteError(projectID, err, "failed to change member role")
	}

	updated := roster.WithMemberRole(membershipID, newRole)
	updated.Version++
	if newLead != nil {
		updated.LeadMembershipID = newLead
	}
	s.rosterStore.Replace(projectID, updated)

	s.writeAuditLog(
		fmt.Sprintf("Project member role changed to %s: %s", newRole, membershipID),
		&changedBy.ID,
		&projectID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	membershipID uuid.UUID,
	removedBy *users_models.User,
) error {
	roster, err := loadRoster(s.rosterStore, s.rosterRepository, projectID)
	if err != nil {
		return err
	}

	member := roster.FindMember(membershipID)
	isSelfRemoval := member != nil && member.UserID == removedBy.ID

	if !s.canManageRoster(roster, removedBy) && !isSelfRemoval {
		return projects_policy.NewDenialError(
			projects_policy.ReasonForbidden,
			"Insufficient permissions to manage project members",
		)
	}

	decision := projects_policy.CanRemove(roster, membershipID)
	if err := decision.Err(); err != nil {
		return err
	}

	var newLead *uuid.UUID
	if roster.IsLead(membershipID) {
		newLead = projects_policy.LeadSuccessor(roster, membershipID)
	}

	err = s.rosterRepository.RemoveMember(projectID, roster.Version, membershipID, newLead)
	if err != nil {
		return s.handleWriteError(projectID, err, "failed to remove member")
	}

	updated := roster.WithoutMember(membershipID)
	updated.Version++
	if newLead != nil {
		updated.LeadMembershipID = newLead
	}
	s.rosterStore.Replace(projectID, updated)

	s.writeAuditLog(
		fmt.Sprintf("User removed from project: %s", member.UserID),
		&removedBy.ID,
		&projectID,
	)

	return nil
}

// loadRoster serves the snapshot from the in-memory store and falls
// back to the repository on a miss, caching the fetched snapshot.
func loadRoster(
	rosterStore *projects_store.RosterStore,
	rosterRepository projects_interfaces.RosterRepository,
	projectID uuid.UUID,
) (*projects_models.Roster, error) {
	if roster, ok := rosterStore.Get(projectID); ok {
		return roster, nil
	}

	roster, err := rosterRepository.FetchRoster(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project roster: %w", err)
	}

	rosterStore.Replace(projectID, roster)

	return roster, nil
}

func (s *MembershipService) canViewRoster(roster *projects_models.Roster, user *users_models.User) bool {
	return user.Role == users_enums.UserRoleAdmin || roster.HasUser(user.ID)
}

func (s *MembershipService) canManageRoster(roster *projects_models.Roster, user *users_models.User) bool {
	if user.Role == users_enums.UserRoleAdmin {
		return true
	}

	member := roster.FindMemberByUser(user.ID)

	return member != nil && member.IsAdmin()
}

func (s *MembershipService) handleWriteError(projectID uuid.UUID, err error, message string) error {
	if errors.Is(err, projects_interfaces.ErrStaleRoster) {
		s.rosterStore.Invalidate(projectID)

		return projects_policy.NewDenialError(
			projects_policy.ReasonStaleRoster,
			"Roster changed concurrently, retry the operation",
		)
	}

	return fmt.Errorf("%s: %w", message, err)
}

func (s *MembershipService) writeAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, projectID)
	}
}
