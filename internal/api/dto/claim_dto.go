package dto

import (
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ClaimCreateRequest payload for opening a claim.
type ClaimCreateRequest struct {
	Description string  `json:"description"`
	ProjectID   string  `json:"project_id"`
	Priority    string  `json:"priority,omitempty"`
	Criticality string  `json:"criticality,omitempty"`
	ClaimType   string  `json:"claim_type,omitempty"`
	SubareaID   *string `json:"subarea_id,omitempty"`
}

// ClaimTransitionRequest payload for a state transition. Omitted fields carry
// forward from the current state.
type ClaimTransitionRequest struct {
	Status          *string `json:"status,omitempty"`
	Priority        *string `json:"priority,omitempty"`
	Criticality     *string `json:"criticality,omitempty"`
	ClaimType       *string `json:"claim_type,omitempty"`
	SubareaID       *string `json:"subarea_id,omitempty"`
	ProjectID       *string `json:"project_id,omitempty"`
	Action          string  `json:"action,omitempty"`
	FinalResolution *string `json:"final_resolution,omitempty"`
}

// ClaimMessageRequest payload for posting a message.
type ClaimMessageRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility,omitempty"`
}

// AttachmentRequest describes one uploaded file reference.
type AttachmentRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AttachmentsRequest payload for attaching files.
type AttachmentsRequest struct {
	Files []AttachmentRequest `json:"files"`
}

// OrgSnapshotResponse is the denormalized subarea/area pair on an entry.
type OrgSnapshotResponse struct {
	SubareaID   string `json:"subarea_id"`
	SubareaName string `json:"subarea_name"`
	AreaID      string `json:"area_id"`
	AreaName    string `json:"area_name"`
}

// ClaimResponse is a claim merged with its current classification.
type ClaimResponse struct {
	ID              string                `json:"id"`
	Code            string                `json:"code"`
	Description     string                `json:"description"`
	ProjectID       string                `json:"project_id"`
	CreatorID       string                `json:"creator_id"`
	Status          string                `json:"status"`
	Priority        string                `json:"priority"`
	Criticality     string                `json:"criticality"`
	ClaimType       string                `json:"claim_type"`
	Snapshot        *OrgSnapshotResponse  `json:"snapshot,omitempty"`
	FinalResolution *string               `json:"final_resolution,omitempty"`
	Attachments     []AttachmentResponse  `json:"attachments,omitempty"`
	OpenedAt        time.Time             `json:"opened_at"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// AttachmentResponse is the public shape of an attachment reference.
type AttachmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntryResponse is one ledger entry in a claim's audit trail.
type HistoryEntryResponse struct {
	ID          string               `json:"id"`
	Action      string               `json:"action"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     *time.Time           `json:"end_time,omitempty"`
	StartDate   time.Time            `json:"start_date"`
	EndDate     *time.Time           `json:"end_date,omitempty"`
	Status      string               `json:"status"`
	Priority    string               `json:"priority"`
	Criticality string               `json:"criticality"`
	ClaimType   string               `json:"claim_type"`
	ActorID     string               `json:"actor_id"`
	Snapshot    *OrgSnapshotResponse `json:"snapshot,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ClaimMessageResponse is one discussion message.
type ClaimMessageResponse struct {
	ID         string    `json:"id"`
	ClaimID    string    `json:"claim_id"`
	AuthorID   string    `json:"author_id"`
	Content    string    `json:"content"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewClaimResponse maps a claim view.
func NewClaimResponse(view *domain.ClaimView) ClaimResponse {
	resp := ClaimResponse{
		ID:              view.ID,
		Code:            view.Code,
		Description:     view.Description,
		ProjectID:       view.ProjectID,
		CreatorID:       view.CreatorID,
		Status:          string(view.Status),
		Priority:        string(view.Priority),
		Criticality:     string(view.Criticality),
		ClaimType:       string(view.ClaimType),
		Snapshot:        newSnapshotResponse(view.Snapshot),
		FinalResolution: view.FinalResolution,
		OpenedAt:        view.OpenedAt,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
	for _, attachment := range view.Attachments {
		resp.Attachments = append(resp.Attachments, NewAttachmentResponse(&attachment))
	}
	return resp
}

// NewClaimResponses maps a slice of claim views.
func NewClaimResponses(views []domain.ClaimView) []ClaimResponse {
	result := make([]ClaimResponse, 0, len(views))
	for i := range views {
		result = append(result, NewClaimResponse(&views[i]))
	}
	return result
}

// NewHistoryEntryResponse maps a ledger entry.
func NewHistoryEntryResponse(entry *domain.ClaimHistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:          entry.ID,
		Action:      entry.Action,
		StartTime:   entry.StartTime,
		EndTime:     entry.EndTime,
		StartDate:   entry.StartDate,
		EndDate:     entry.EndDate,
		Status:      string(entry.Status),
		Priority:    string(entry.Priority),
		Criticality: string(entry.Criticality),
		ClaimType:   string(entry.ClaimType),
		ActorID:     entry.ActorID,
		Snapshot:    newSnapshotResponse(entry.Snapshot),
		CreatedAt:   entry.CreatedAt,
	}
}

// NewHistoryEntryResponses maps a claim's full trail.
func NewHistoryEntryResponses(entries []domain.ClaimHistoryEntry) []HistoryEntryResponse {
	result := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, NewHistoryEntryResponse(&entries[i]))
	}
	return result
}

// NewAttachmentResponse maps an attachment reference.
func NewAttachmentResponse(attachment *domain.AttachmentReference) AttachmentResponse {
	return AttachmentResponse{
		ID:        attachment.ID,
		Name:      attachment.Name,
		Kind:      string(attachment.Kind),
		URL:       attachment.URL,
		CreatedAt: attachment.CreatedAt,
	}
}

// NewClaimMessageResponse maps a discussion message.
func NewClaimMessageResponse(message *domain.ClaimMessage) ClaimMessageResponse {
	return ClaimMessageResponse{
		ID:         message.ID,
		ClaimID:    message.ClaimID,
		AuthorID:   message.AuthorID,
		Content:    message.Content,
		Visibility: string(message.Visibility),
		CreatedAt:  message.CreatedAt,
	}
}

// NewClaimMessageResponses maps a slice of messages.
func NewClaimMessageResponses(messages []domain.ClaimMessage) []ClaimMessageResponse {
	result := make([]ClaimMessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, NewClaimMessageResponse(&messages[i]))
	}
	return result
}

func newSnapshotResponse(snapshot *domain.OrgSnapshot) *OrgSnapshotResponse {
	if snapshot == nil {
		return nil
	}
	return &OrgSnapshotResponse{
		SubareaID:   snapshot.SubareaID,
		SubareaName: snapshot.SubareaName,
		AreaID:      snapshot.AreaID,
		AreaName:    snapshot.AreaName,
	}
}
