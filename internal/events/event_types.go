package events

import (
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClaimCreated      EventType = "claim_created"
	EventClaimTransitioned EventType = "claim_transitioned"
	EventClaimMessageAdded EventType = "claim_message_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ClaimID   string      `json:"claim_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ClaimCreatedPayload payload.
type ClaimCreatedPayload struct {
	ProjectID   string                  `json:"project_id"`
	Priority    domain.ClaimPriority    `json:"priority"`
	Criticality domain.ClaimCriticality `json:"criticality"`
	ClaimType   domain.ClaimType        `json:"claim_type"`
}

// ClaimTransitionedPayload payload.
type ClaimTransitionedPayload struct {
	OldStatus domain.ClaimStatus `json:"old_status"`
	NewStatus domain.ClaimStatus `json:"new_status"`
	Action    string             `json:"action,omitempty"`
}

// ClaimMessageAddedPayload payload.
type ClaimMessageAddedPayload struct {
	MessageID  string                   `json:"message_id"`
	Visibility domain.MessageVisibility `json:"visibility"`
	AuthorID   string                   `json:"author_id"`
}
