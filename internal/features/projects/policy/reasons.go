package projects_policy

// Reason is a stable machine-readable code explaining why a membership
// mutation was rejected. Clients must match on these codes, never on
// the human-readable message text.
type Reason string

const (
	ReasonAlreadyMember               Reason = "ALREADY_MEMBER"
	ReasonSoleAdminDemotion           Reason = "SOLE_ADMIN_DEMOTION"
	ReasonSoleAdminRemoval            Reason = "SOLE_ADMIN_REMOVAL"
	ReasonLeadReassignmentUnavailable Reason = "LEAD_REASSIGNMENT_UNAVAILABLE"
	ReasonMemberNotFound              Reason = "MEMBER_NOT_FOUND"
	ReasonProjectNotFound             Reason = "PROJECT_NOT_FOUND"
	ReasonUserNotFound                Reason = "USER_NOT_FOUND"
	ReasonStaleRoster                 Reason = "STALE_ROSTER"
	ReasonForbidden                   Reason = "FORBIDDEN"
)

// DenialError is the typed error carrying a denial reason through the
// service layer. Policy violations are recoverable by the caller and
// are always distinguishable from infrastructure failures.
type DenialError struct {
	Reason  Reason
	Message string
}

func (e *DenialError) Error() string {
	return e.Message
}

func NewDenialError(reason Reason, message string) *DenialError {
	return &DenialError{Reason: reason, Message: message}
}
