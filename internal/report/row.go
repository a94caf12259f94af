// Package report computes operational report views over the claim state
// history. Views are pure functions over a flat row set (one row per history
// entry, denormalized with its claim and project), so every stage can be
// exercised without a database.
package report

import (
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

// Row is one history entry joined with its claim and owning project.
// Snapshot fields are the values recorded on the entry at transition time,
// not a live directory join.
type Row struct {
	EntryID          string
	ClaimID          string
	ClaimDescription string
	ProjectID        string
	ProjectType      domain.ProjectType
	ProjectOwnerID   string
	Status           domain.ClaimStatus
	Priority         domain.ClaimPriority
	Criticality      domain.ClaimCriticality
	ClaimType        domain.ClaimType
	ActorID          string
	SubareaID        *string
	SubareaName      *string
	AreaID           *string
	AreaName         *string
	StartDate        time.Time
	EndDate          *time.Time
	CreatedAt        time.Time
}

// Open reports whether the row's entry is the currently active one.
func (r *Row) Open() bool {
	return r.EndDate == nil
}

// claimRows groups a claim's entries in creation order.
type claimRows struct {
	claimID string
	rows    []Row
}

func (c *claimRows) first() *Row {
	return &c.rows[0]
}

func (c *claimRows) latest() *Row {
	return &c.rows[len(c.rows)-1]
}

func (c *claimRows) hasStatus(status domain.ClaimStatus) bool {
	for i := range c.rows {
		if c.rows[i].Status == status {
			return true
		}
	}
	return false
}

func (c *claimRows) hasActor(actorID string) bool {
	for i := range c.rows {
		if c.rows[i].ActorID == actorID {
			return true
		}
	}
	return false
}

// groupByClaim partitions rows per claim, each group sorted by entry
// creation order regardless of input order.
func groupByClaim(rows []Row) []claimRows {
	index := make(map[string]int)
	var groups []claimRows
	for _, row := range rows {
		i, ok := index[row.ClaimID]
		if !ok {
			i = len(groups)
			index[row.ClaimID] = i
			groups = append(groups, claimRows{claimID: row.ClaimID})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	for i := range groups {
		sortRowsByCreation(groups[i].rows)
	}
	return groups
}

func sortRowsByCreation(rows []Row) {
	// Insertion sort; per-claim trails are short.
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && laterCreated(&rows[j-1], &rows[j]); j-- {
			rows[j-1], rows[j] = rows[j], rows[j-1]
		}
	}
}

// laterCreated reports whether a was created after b, with the id as a
// stable tiebreaker so same-timestamp entries keep insertion order.
func laterCreated(a, b *Row) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.EntryID > b.EntryID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
