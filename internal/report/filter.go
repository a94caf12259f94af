package report

import (
	"strings"
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

// Filter is the normalized, composable filter applied to every view. All
// supplied dimensions combine with AND.
type Filter struct {
	From              *time.Time
	To                *time.Time
	ProjectID         *string
	ProjectIDs        []string
	ProjectType       *domain.ProjectType
	SubareaID         *string
	ResponsibleUserID *string
	ClaimType         *domain.ClaimType
	CustomerID        *string
	Search            *string
}

// ForRole derives the baseline scope for a caller and merges it into the
// filter. Admins and auditors are unscoped. A customer is restricted to
// projects they own. A plain user is restricted to claims where they appear
// as the actor on any history entry, not just the currently open one.
func (f Filter) ForRole(role domain.Role, callerID string) Filter {
	scoped := f
	switch role {
	case domain.RoleCustomer:
		scoped.CustomerID = &callerID
	case domain.RoleUser:
		scoped.ResponsibleUserID = &callerID
	}
	return scoped
}

// matchClaim evaluates the claim-level dimensions against any row of the
// claim (they are constant across a claim's rows).
func (f Filter) matchClaim(row *Row) bool {
	if f.ProjectID != nil && row.ProjectID != *f.ProjectID {
		return false
	}
	if len(f.ProjectIDs) > 0 && !containsString(f.ProjectIDs, row.ProjectID) {
		return false
	}
	if f.ProjectType != nil && row.ProjectType != *f.ProjectType {
		return false
	}
	if f.CustomerID != nil && row.ProjectOwnerID != *f.CustomerID {
		return false
	}
	if f.Search != nil {
		term := strings.ToLower(strings.TrimSpace(*f.Search))
		if term != "" && !strings.Contains(strings.ToLower(row.ClaimDescription), term) {
			return false
		}
	}
	return true
}

// matchEntry evaluates the entry-level dimensions: date range on the entry's
// start date, organizational placement, and acting user.
func (f Filter) matchEntry(row *Row) bool {
	if !f.inRange(row.StartDate) {
		return false
	}
	if f.SubareaID != nil && (row.SubareaID == nil || *row.SubareaID != *f.SubareaID) {
		return false
	}
	if f.ResponsibleUserID != nil && row.ActorID != *f.ResponsibleUserID {
		return false
	}
	return true
}

// matchInvolvement keeps claims the responsible user touched on any entry.
func (f Filter) matchInvolvement(claim *claimRows) bool {
	if f.ResponsibleUserID == nil {
		return true
	}
	return claim.hasActor(*f.ResponsibleUserID)
}

func (f Filter) inRange(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
