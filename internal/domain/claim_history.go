package domain

import "time"

// OrgSnapshot is a denormalized copy of organizational placement captured at
// transition time. Later renames of an area or subarea must not change what
// historical entries report, so this is a value, not a reference.
type OrgSnapshot struct {
	SubareaID   string
	SubareaName string
	AreaID      string
	AreaName    string
}

// ClaimHistoryEntry is one append-only audit-trail record capturing a claim's
// classification during a time window. The entry with no EndDate is the
// currently active one; at most one such entry exists per claim.
type ClaimHistoryEntry struct {
	ID          string
	ClaimID     string
	Action      string
	StartTime   time.Time
	EndTime     *time.Time
	StartDate   time.Time
	EndDate     *time.Time
	Status      ClaimStatus
	Priority    ClaimPriority
	Criticality ClaimCriticality
	ClaimType   ClaimType
	ActorID     string
	Snapshot    *OrgSnapshot
	CreatedAt   time.Time
}

// Open reports whether the entry is still the active classification window.
func (e *ClaimHistoryEntry) Open() bool {
	return e.EndDate == nil
}
