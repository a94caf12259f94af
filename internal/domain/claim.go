package domain

import "time"

// ClaimStatus enumerates lifecycle states for claims.
type ClaimStatus string

const (
	ClaimStatusPending    ClaimStatus = "PENDING"
	ClaimStatusInProgress ClaimStatus = "IN_PROGRESS"
	ClaimStatusResolved   ClaimStatus = "RESOLVED"
	ClaimStatusClosed     ClaimStatus = "CLOSED"
)

// ClaimPriority enumerates SLA urgency.
type ClaimPriority string

const (
	ClaimPriorityLow    ClaimPriority = "LOW"
	ClaimPriorityMedium ClaimPriority = "MEDIUM"
	ClaimPriorityHigh   ClaimPriority = "HIGH"
	ClaimPriorityUrgent ClaimPriority = "URGENT"
)

// ClaimCriticality enumerates business impact.
type ClaimCriticality string

const (
	ClaimCriticalityMinor    ClaimCriticality = "MINOR"
	ClaimCriticalityMajor    ClaimCriticality = "MAJOR"
	ClaimCriticalityCritical ClaimCriticality = "CRITICAL"
	ClaimCriticalityBlocker  ClaimCriticality = "BLOCKER"
)

// ClaimType categorizes the nature of a claim.
type ClaimType string

const (
	ClaimTypeTechnical       ClaimType = "TECHNICAL"
	ClaimTypeBilling         ClaimType = "BILLING"
	ClaimTypeCustomerService ClaimType = "CUSTOMER_SERVICE"
	ClaimTypeOther           ClaimType = "OTHER"
)

// Claim is the aggregate root for support claims raised against a project.
// Classification (status, priority, criticality, type, organizational
// placement) is never stored here; it always lives on the most recently
// created history entry.
type Claim struct {
	ID              string
	Code            string
	Description     string
	FinalResolution *string
	ProjectID       string
	CreatorID       string
	Attachments     []AttachmentReference
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ClaimView is a claim projected together with the classification and
// organizational snapshot of its latest history entry.
type ClaimView struct {
	Claim
	Status      ClaimStatus
	Priority    ClaimPriority
	Criticality ClaimCriticality
	ClaimType   ClaimType
	Snapshot    *OrgSnapshot
	OpenedAt    time.Time
}

// IsValid reports whether the status is a known taxonomy value.
func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusInProgress, ClaimStatusResolved, ClaimStatusClosed:
		return true
	}
	return false
}

// IsValid reports whether the priority is a known taxonomy value.
func (p ClaimPriority) IsValid() bool {
	switch p {
	case ClaimPriorityLow, ClaimPriorityMedium, ClaimPriorityHigh, ClaimPriorityUrgent:
		return true
	}
	return false
}

// IsValid reports whether the criticality is a known taxonomy value.
func (c ClaimCriticality) IsValid() bool {
	switch c {
	case ClaimCriticalityMinor, ClaimCriticalityMajor, ClaimCriticalityCritical, ClaimCriticalityBlocker:
		return true
	}
	return false
}

// IsValid reports whether the claim type is a known taxonomy value.
func (t ClaimType) IsValid() bool {
	switch t {
	case ClaimTypeTechnical, ClaimTypeBilling, ClaimTypeCustomerService, ClaimTypeOther:
		return true
	}
	return false
}
