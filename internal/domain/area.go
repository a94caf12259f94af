package domain

import "time"

// Area is a top-level organizational unit.
type Area struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subarea is an organizational unit within an area. Claim transitions record
// a snapshot of the subarea (and its parent area) rather than a live
// reference.
type Subarea struct {
	ID          string
	Name        string
	Description *string
	AreaID      string
	AreaName    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SnapshotFor returns the denormalized copy stored on history entries.
func (s *Subarea) SnapshotFor() *OrgSnapshot {
	return &OrgSnapshot{
		SubareaID:   s.ID,
		SubareaName: s.Name,
		AreaID:      s.AreaID,
		AreaName:    s.AreaName,
	}
}
