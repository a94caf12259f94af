package domain

import "time"

// MessageVisibility controls who may read a claim message.
type MessageVisibility string

const (
	MessageVisibilityPublic   MessageVisibility = "PUBLIC"
	MessageVisibilityInternal MessageVisibility = "INTERNAL"
)

// ClaimMessage is a discussion entry on a claim.
type ClaimMessage struct {
	ID         string
	ClaimID    string
	AuthorID   string
	Content    string
	Visibility MessageVisibility
	CreatedAt  time.Time
}
