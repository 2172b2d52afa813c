package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID   uuid.UUID `json:"id"   gorm:"column:id"`
	Name string    `json:"name" gorm:"column:name"`

	// RosterVersion is the optimistic concurrency token for membership
	// mutations. Every roster write bumps it; writers racing against a
	// concurrent mutation lose the compare-and-swap and must refetch.
	RosterVersion int64 `json:"rosterVersion" gorm:"column:roster_version"`

	// LeadMembershipID designates the project lead. Always references
	// an admin member; reassigned when the lead is removed or demoted.
	LeadMembershipID *uuid.UUID `json:"leadMembershipId" gorm:"column:lead_membership_id"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"` // Used for caching non-existent projects
}

func (Project) TableName() string {
	return "projects"
}
