package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/events"
	"github.com/spec-kit/claims-service/internal/repository"
	apperrors "github.com/spec-kit/claims-service/pkg/util/errorutil"
)

const (
	defaultCreateAction     = "Claim created"
	defaultTransitionAction = "Claim updated"
	maxAttachmentsPerBatch  = 2
)

// ClaimService owns the claim lifecycle: creation, state transitions, and
// projections of the current state from the history ledger.
type ClaimService struct {
	claims      repository.ClaimRepository
	history     repository.ClaimHistoryRepository
	projects    repository.ProjectRepository
	subareas    repository.SubareaRepository
	messages    repository.ClaimMessageRepository
	attachments repository.AttachmentRepository
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// ClaimDependencies bundles repositories for the claim service.
type ClaimDependencies struct {
	ClaimRepo      repository.ClaimRepository
	HistoryRepo    repository.ClaimHistoryRepository
	ProjectRepo    repository.ProjectRepository
	SubareaRepo    repository.SubareaRepository
	MessageRepo    repository.ClaimMessageRepository
	AttachmentRepo repository.AttachmentRepository
	Dispatcher     events.Dispatcher
}

// ClaimCreateInput describes claim creation payload. Status is not accepted:
// every claim opens PENDING.
type ClaimCreateInput struct {
	Description string
	ProjectID   string
	Priority    domain.ClaimPriority
	Criticality domain.ClaimCriticality
	ClaimType   domain.ClaimType
	SubareaID   *string
}

// ClaimTransitionInput is the change set for a transition. Nil fields carry
// forward from the latest entry; the organizational snapshot carries forward
// unless a new subarea is supplied. ActionNote alone is a valid transition:
// the note itself is audit content.
type ClaimTransitionInput struct {
	Status      *domain.ClaimStatus
	Priority    *domain.ClaimPriority
	Criticality *domain.ClaimCriticality
	ClaimType   *domain.ClaimType
	SubareaID   *string
	ProjectID   *string
	ActionNote  string
	// FinalResolution is recorded on the claim itself; it only makes sense
	// on a transition to RESOLVED.
	FinalResolution *string
}

// ClaimListFilter describes claim listing parameters.
type ClaimListFilter struct {
	ProjectID   *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// AttachmentInput defines attachment metadata from the upload collaborator.
type AttachmentInput struct {
	Name string
	URL  string
}

// NewClaimService constructs the service.
func NewClaimService(deps ClaimDependencies) *ClaimService {
	return &ClaimService{
		claims:      deps.ClaimRepo,
		history:     deps.HistoryRepo,
		projects:    deps.ProjectRepo,
		subareas:    deps.SubareaRepo,
		messages:    deps.MessageRepo,
		attachments: deps.AttachmentRepo,
		dispatcher:  deps.Dispatcher,
		now:         time.Now,
	}
}

// CreateClaim persists the claim aggregate together with its first history
// entry. The first entry's status is forced to PENDING regardless of the
// caller's input.
func (s *ClaimService) CreateClaim(ctx context.Context, creatorID string, input ClaimCreateInput) (*domain.ClaimView, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}
	if err := validateClassification(input.Priority, input.Criticality, input.ClaimType); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": input.ProjectID})
		}
		return nil, err
	}

	snapshot, err := s.resolveSnapshot(ctx, input.SubareaID)
	if err != nil {
		return nil, err
	}

	claim := &domain.Claim{
		Code:        generateClaimCode(),
		Description: strings.TrimSpace(input.Description),
		ProjectID:   input.ProjectID,
		CreatorID:   creatorID,
	}

	openedAt := s.now()
	entry := &domain.ClaimHistoryEntry{
		Action:      defaultCreateAction,
		StartTime:   openedAt,
		StartDate:   openedAt,
		Status:      domain.ClaimStatusPending,
		Priority:    defaultPriority(input.Priority),
		Criticality: defaultCriticality(input.Criticality),
		ClaimType:   defaultClaimType(input.ClaimType),
		ActorID:     creatorID,
		Snapshot:    snapshot,
	}

	if err := s.claims.CreateWithInitialEntry(ctx, claim, entry); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventClaimCreated,
		ClaimID: claim.ID,
		ActorID: creatorID,
		Payload: events.ClaimCreatedPayload{
			ProjectID:   claim.ProjectID,
			Priority:    entry.Priority,
			Criticality: entry.Criticality,
			ClaimType:   entry.ClaimType,
		},
	})
	return claimView(claim, entry), nil
}

// TransitionClaim closes the open entry and appends a new one as a single
// atomic unit. Fails with Conflict once the latest entry is RESOLVED.
func (s *ClaimService) TransitionClaim(ctx context.Context, actorID, claimID string, input ClaimTransitionInput) (*domain.ClaimView, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*input.Status)})
	}
	if err := validateClassification(
		derefOr(input.Priority, ""),
		derefOr(input.Criticality, ""),
		derefOr(input.ClaimType, ""),
	); err != nil {
		return nil, err
	}

	var newProjectID *string
	if input.ProjectID != nil {
		if _, err := uuid.Parse(*input.ProjectID); err != nil {
			return nil, apperrors.NewBadRequest("invalid project id", map[string]any{"project_id": *input.ProjectID})
		}
		if _, err := s.projects.GetByID(ctx, *input.ProjectID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("project", map[string]any{"project_id": *input.ProjectID})
			}
			return nil, err
		}
		newProjectID = input.ProjectID
	}

	newSnapshot, err := s.resolveSnapshot(ctx, input.SubareaID)
	if err != nil {
		return nil, err
	}

	transitionAt := s.now()
	var previousStatus domain.ClaimStatus
	entry, err := s.history.ApplyTransition(ctx, claimID, transitionAt, func(latest *domain.ClaimHistoryEntry) (*repository.TransitionOutcome, error) {
		previousStatus = latest.Status
		if latest.Status == domain.ClaimStatusResolved {
			return nil, apperrors.NewConflict("claim resolved, no further updates", map[string]any{"claim_id": claimID})
		}
		next := mergeTransition(latest, input, actorID, transitionAt)
		if newSnapshot != nil {
			next.Snapshot = newSnapshot
		}
		if next.Status == domain.ClaimStatusResolved {
			// RESOLVED is terminal, so the entry closes the moment it is
			// written and the claim keeps no open entry.
			closedAt := transitionAt
			next.EndTime = &closedAt
			next.EndDate = &closedAt
		}
		outcome := &repository.TransitionOutcome{Entry: next, NewProjectID: newProjectID}
		if input.FinalResolution != nil && next.Status == domain.ClaimStatusResolved {
			outcome.FinalResolution = input.FinalResolution
		}
		return outcome, nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return nil, err
	}

	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventClaimTransitioned,
		ClaimID: claimID,
		ActorID: actorID,
		Payload: events.ClaimTransitionedPayload{
			OldStatus: previousStatus,
			NewStatus: entry.Status,
			Action:    entry.Action,
		},
	})
	return claimView(claim, entry), nil
}

// mergeTransition builds the next entry from the latest one, carrying
// forward every classification field the input leaves nil. The snapshot
// carries forward too; callers overwrite it when a new subarea resolved.
// The actor is always the user performing this transition, never carried.
func mergeTransition(latest *domain.ClaimHistoryEntry, input ClaimTransitionInput, actorID string, at time.Time) *domain.ClaimHistoryEntry {
	action := strings.TrimSpace(input.ActionNote)
	if action == "" {
		action = defaultTransitionAction
	}
	next := &domain.ClaimHistoryEntry{
		ClaimID:     latest.ClaimID,
		Action:      action,
		StartTime:   at,
		StartDate:   at,
		Status:      latest.Status,
		Priority:    latest.Priority,
		Criticality: latest.Criticality,
		ClaimType:   latest.ClaimType,
		ActorID:     actorID,
		Snapshot:    latest.Snapshot,
	}
	if input.Status != nil {
		next.Status = *input.Status
	}
	if input.Priority != nil {
		next.Priority = *input.Priority
	}
	if input.Criticality != nil {
		next.Criticality = *input.Criticality
	}
	if input.ClaimType != nil {
		next.ClaimType = *input.ClaimType
	}
	return next
}

// GetClaim returns the claim's stable fields merged with the classification
// of its most recently created history entry.
func (s *ClaimService) GetClaim(ctx context.Context, claimID string) (*domain.ClaimView, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return nil, err
	}
	latest, err := s.history.Latest(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if s.attachments != nil {
		attachments, err := s.attachments.ListByClaim(ctx, claimID)
		if err != nil {
			return nil, err
		}
		claim.Attachments = attachments
	}
	return claimView(claim, latest), nil
}

// GetHistory returns the full ordered audit trail for a claim.
func (s *ClaimService) GetHistory(ctx context.Context, claimID string) ([]domain.ClaimHistoryEntry, error) {
	if _, err := s.claims.GetByID(ctx, claimID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return nil, err
	}
	return s.history.ListByClaim(ctx, claimID)
}

// ListClaims returns role-scoped claims with their current classification.
// Customers only see claims they created.
func (s *ClaimService) ListClaims(ctx context.Context, caller *domain.User, filter ClaimListFilter) ([]domain.ClaimView, error) {
	repoFilter := repository.ClaimFilter{
		ProjectID:   filter.ProjectID,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if caller != nil && caller.Role == domain.RoleCustomer {
		repoFilter.CreatorID = &caller.ID
	}
	claims, err := s.claims.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ClaimView, 0, len(claims))
	for i := range claims {
		latest, err := s.history.Latest(ctx, claims[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, *claimView(&claims[i], latest))
	}
	return views, nil
}

// PostMessage appends a discussion message to a claim.
func (s *ClaimService) PostMessage(ctx context.Context, authorID, claimID, content string, visibility domain.MessageVisibility) (*domain.ClaimMessage, error) {
	if _, err := s.claims.GetByID(ctx, claimID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return nil, err
	}
	if visibility == "" {
		visibility = domain.MessageVisibilityPublic
	}
	message := &domain.ClaimMessage{
		ClaimID:    claimID,
		AuthorID:   authorID,
		Content:    strings.TrimSpace(content),
		Visibility: visibility,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventClaimMessageAdded,
		ClaimID: claimID,
		ActorID: authorID,
		Payload: events.ClaimMessageAddedPayload{
			MessageID:  message.ID,
			Visibility: message.Visibility,
			AuthorID:   authorID,
		},
	})
	return message, nil
}

// ListMessages returns claim messages; internal messages are withheld from
// customers.
func (s *ClaimService) ListMessages(ctx context.Context, caller *domain.User, claimID string) ([]domain.ClaimMessage, error) {
	messages, err := s.messages.ListByClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if caller == nil || caller.Role != domain.RoleCustomer {
		return messages, nil
	}
	visible := make([]domain.ClaimMessage, 0, len(messages))
	for _, message := range messages {
		if message.Visibility == domain.MessageVisibilityInternal {
			continue
		}
		visible = append(visible, message)
	}
	return visible, nil
}

// AttachFiles records attachment references on a claim.
func (s *ClaimService) AttachFiles(ctx context.Context, claimID string, files []AttachmentInput) ([]domain.AttachmentReference, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequest("no files uploaded", nil)
	}
	if len(files) > maxAttachmentsPerBatch {
		return nil, apperrors.NewBadRequest("maximum 2 files allowed", nil)
	}
	if _, err := s.claims.GetByID(ctx, claimID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return nil, err
	}

	result := make([]domain.AttachmentReference, 0, len(files))
	for _, file := range files {
		record := &domain.AttachmentReference{
			ClaimID: claimID,
			Name:    file.Name,
			Kind:    domain.AttachmentKindFromName(file.Name),
			URL:     file.URL,
		}
		if err := s.attachments.Create(ctx, record); err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, nil
}

// DeleteClaim removes a claim; the storage layer cascades its trail.
func (s *ClaimService) DeleteClaim(ctx context.Context, claimID string) error {
	if err := s.claims.Delete(ctx, claimID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return err
	}
	return nil
}

func (s *ClaimService) resolveSnapshot(ctx context.Context, subareaID *string) (*domain.OrgSnapshot, error) {
	if subareaID == nil || strings.TrimSpace(*subareaID) == "" {
		return nil, nil
	}
	subarea, err := s.subareas.GetByID(ctx, *subareaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subarea", map[string]any{"subarea_id": *subareaID})
		}
		return nil, err
	}
	return subarea.SnapshotFor(), nil
}

func (s *ClaimService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func claimView(claim *domain.Claim, latest *domain.ClaimHistoryEntry) *domain.ClaimView {
	view := &domain.ClaimView{Claim: *claim}
	if latest != nil {
		view.Status = latest.Status
		view.Priority = latest.Priority
		view.Criticality = latest.Criticality
		view.ClaimType = latest.ClaimType
		view.Snapshot = latest.Snapshot
		view.OpenedAt = latest.StartTime
	}
	return view
}

func generateClaimCode() string {
	return "CLM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func validateClassification(p domain.ClaimPriority, c domain.ClaimCriticality, t domain.ClaimType) error {
	if p != "" && !p.IsValid() {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": string(p)})
	}
	if c != "" && !c.IsValid() {
		return apperrors.NewValidationError("invalid criticality", map[string]any{"criticality": string(c)})
	}
	if t != "" && !t.IsValid() {
		return apperrors.NewValidationError("invalid claim type", map[string]any{"claim_type": string(t)})
	}
	return nil
}

func derefOr[T ~string](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func defaultPriority(p domain.ClaimPriority) domain.ClaimPriority {
	if p == "" {
		return domain.ClaimPriorityMedium
	}
	return p
}

func defaultCriticality(c domain.ClaimCriticality) domain.ClaimCriticality {
	if c == "" {
		return domain.ClaimCriticalityMinor
	}
	return c
}

func defaultClaimType(t domain.ClaimType) domain.ClaimType {
	if t == "" {
		return domain.ClaimTypeOther
	}
	return t
}
