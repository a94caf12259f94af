package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/events"
	"github.com/spec-kit/claims-service/internal/repository"
	apperrors "github.com/spec-kit/claims-service/pkg/util/errorutil"
)

// fakeClaimStore backs both the claim repository and the history ledger with
// in-memory maps, mirroring the transactional close-then-append contract.
type fakeClaimStore struct {
	mu      sync.Mutex
	claims  map[string]*domain.Claim
	entries map[string][]domain.ClaimHistoryEntry
	seq     int
	clock   time.Time
}

func newFakeClaimStore() *fakeClaimStore {
	return &fakeClaimStore{
		claims:  make(map[string]*domain.Claim),
		entries: make(map[string][]domain.ClaimHistoryEntry),
		clock:   time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeClaimStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeClaimStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *fakeClaimStore) CreateWithInitialEntry(_ context.Context, claim *domain.Claim, entry *domain.ClaimHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim.ID = s.nextID("claim")
	claim.CreatedAt = s.tick()
	claim.UpdatedAt = claim.CreatedAt
	s.claims[claim.ID] = claim

	entry.ID = s.nextID("entry")
	entry.ClaimID = claim.ID
	entry.CreatedAt = s.tick()
	s.entries[claim.ID] = append(s.entries[claim.ID], *entry)
	return nil
}

func (s *fakeClaimStore) GetByID(_ context.Context, id string) (*domain.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim, ok := s.claims[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *claim
	return &copied, nil
}

func (s *fakeClaimStore) ListWithFilter(_ context.Context, filter repository.ClaimFilter) ([]domain.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Claim
	for _, claim := range s.claims {
		if filter.CreatorID != nil && claim.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.ProjectID != nil && claim.ProjectID != *filter.ProjectID {
			continue
		}
		result = append(result, *claim)
	}
	return result, nil
}

func (s *fakeClaimStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.claims, id)
	delete(s.entries, id)
	return nil
}

func (s *fakeClaimStore) Append(_ context.Context, entry *domain.ClaimHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID("entry")
	entry.CreatedAt = s.tick()
	s.entries[entry.ClaimID] = append(s.entries[entry.ClaimID], *entry)
	return nil
}

func (s *fakeClaimStore) CloseOpen(_ context.Context, claimID string, closeTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeOpenLocked(claimID, closeTime)
	return nil
}

func (s *fakeClaimStore) closeOpenLocked(claimID string, closeTime time.Time) {
	trail := s.entries[claimID]
	for i := range trail {
		if trail[i].EndDate == nil {
			t := closeTime
			trail[i].EndTime = &t
			trail[i].EndDate = &t
		}
	}
}

func (s *fakeClaimStore) Latest(_ context.Context, claimID string) (*domain.ClaimHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trail := s.entries[claimID]
	if len(trail) == 0 {
		return nil, pgx.ErrNoRows
	}
	latest := trail[len(trail)-1]
	return &latest, nil
}

func (s *fakeClaimStore) ListByClaim(_ context.Context, claimID string) ([]domain.ClaimHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ClaimHistoryEntry(nil), s.entries[claimID]...), nil
}

func (s *fakeClaimStore) ApplyTransition(_ context.Context, claimID string, closeTime time.Time, build repository.TransitionFunc) (*domain.ClaimHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim, ok := s.claims[claimID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	trail := s.entries[claimID]
	if len(trail) == 0 {
		return nil, pgx.ErrNoRows
	}
	latest := trail[len(trail)-1]

	outcome, err := build(&latest)
	if err != nil {
		return nil, err
	}
	if outcome == nil || outcome.Entry == nil {
		return nil, errors.New("transition produced no entry")
	}

	s.closeOpenLocked(claimID, closeTime)

	outcome.Entry.ID = s.nextID("entry")
	outcome.Entry.ClaimID = claimID
	outcome.Entry.CreatedAt = s.tick()
	s.entries[claimID] = append(s.entries[claimID], *outcome.Entry)

	if outcome.NewProjectID != nil {
		claim.ProjectID = *outcome.NewProjectID
	}
	if outcome.FinalResolution != nil {
		claim.FinalResolution = outcome.FinalResolution
	}
	return outcome.Entry, nil
}

type fakeProjectRepo struct {
	projects map[string]*domain.Project
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return project, nil
}

func (r *fakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Project, error) {
	var result []domain.Project
	for _, project := range r.projects {
		if project.OwnerID == ownerID {
			result = append(result, *project)
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) ListActive(_ context.Context) ([]domain.Project, error) {
	var result []domain.Project
	for _, project := range r.projects {
		if project.IsActive {
			result = append(result, *project)
		}
	}
	return result, nil
}

type fakeSubareaRepo struct {
	subareas map[string]*domain.Subarea
}

func (r *fakeSubareaRepo) Create(_ context.Context, subarea *domain.Subarea) error {
	r.subareas[subarea.ID] = subarea
	return nil
}

func (r *fakeSubareaRepo) Update(_ context.Context, subarea *domain.Subarea) error {
	r.subareas[subarea.ID] = subarea
	return nil
}

func (r *fakeSubareaRepo) GetByID(_ context.Context, id string) (*domain.Subarea, error) {
	subarea, ok := r.subareas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return subarea, nil
}

func (r *fakeSubareaRepo) ListByArea(_ context.Context, areaID string) ([]domain.Subarea, error) {
	var result []domain.Subarea
	for _, subarea := range r.subareas {
		if subarea.AreaID == areaID {
			result = append(result, *subarea)
		}
	}
	return result, nil
}

type fakeMessageRepo struct {
	messages []domain.ClaimMessage
	seq      int
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.ClaimMessage) error {
	r.seq++
	message.ID = fmt.Sprintf("msg-%d", r.seq)
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) ListByClaim(_ context.Context, claimID string) ([]domain.ClaimMessage, error) {
	var result []domain.ClaimMessage
	for _, message := range r.messages {
		if message.ClaimID == claimID {
			result = append(result, message)
		}
	}
	return result, nil
}

type fakeAttachmentRepo struct {
	attachments []domain.AttachmentReference
	seq         int
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.AttachmentReference) error {
	r.seq++
	attachment.ID = fmt.Sprintf("att-%d", r.seq)
	attachment.CreatedAt = time.Now()
	r.attachments = append(r.attachments, *attachment)
	return nil
}

func (r *fakeAttachmentRepo) ListByClaim(_ context.Context, claimID string) ([]domain.AttachmentReference, error) {
	var result []domain.AttachmentReference
	for _, attachment := range r.attachments {
		if attachment.ClaimID == claimID {
			result = append(result, attachment)
		}
	}
	return result, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type claimServiceFixture struct {
	service    *ClaimService
	store      *fakeClaimStore
	dispatcher *recordingDispatcher
}

func newClaimServiceFixture() *claimServiceFixture {
	store := newFakeClaimStore()
	dispatcher := &recordingDispatcher{}
	projects := &fakeProjectRepo{projects: map[string]*domain.Project{
		"p1": {ID: "p1", Title: "Rollout", OwnerID: "cust1", ProjectType: domain.ProjectTypeCommercial, IsActive: true},
		"p2": {ID: "p2", Title: "Upkeep", OwnerID: "cust2", ProjectType: domain.ProjectTypeMaintenance, IsActive: true},
	}}
	subareas := &fakeSubareaRepo{subareas: map[string]*domain.Subarea{
		"sa1": {ID: "sa1", Name: "Hardware", AreaID: "a1", AreaName: "Support"},
	}}

	svc := NewClaimService(ClaimDependencies{
		ClaimRepo:      store,
		HistoryRepo:    store,
		ProjectRepo:    projects,
		SubareaRepo:    subareas,
		MessageRepo:    &fakeMessageRepo{},
		AttachmentRepo: &fakeAttachmentRepo{},
		Dispatcher:     dispatcher,
	})
	return &claimServiceFixture{service: svc, store: store, dispatcher: dispatcher}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error %v is not a DomainError", err)
	}
	return domainErr.Code
}

func TestCreateClaim(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, err := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{
		Description: "dashboard unreachable",
		ProjectID:   "p1",
		Priority:    domain.ClaimPriorityHigh,
		ClaimType:   domain.ClaimTypeTechnical,
	})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	if view.Status != domain.ClaimStatusPending {
		t.Errorf("status = %s, want PENDING", view.Status)
	}
	if view.Priority != domain.ClaimPriorityHigh {
		t.Errorf("priority = %s, want HIGH", view.Priority)
	}
	if view.Criticality != domain.ClaimCriticalityMinor {
		t.Errorf("criticality = %s, want default MINOR", view.Criticality)
	}
	if !strings.HasPrefix(view.Code, "CLM-") {
		t.Errorf("code = %q, want CLM- prefix", view.Code)
	}

	trail, _ := fx.store.ListByClaim(ctx, view.ID)
	if len(trail) != 1 {
		t.Fatalf("trail length = %d, want 1", len(trail))
	}
	if !trail[0].Open() {
		t.Error("first entry should be open")
	}
	if len(fx.dispatcher.published) != 1 || fx.dispatcher.published[0].Type != events.EventClaimCreated {
		t.Errorf("published events = %+v, want one ClaimCreated", fx.dispatcher.published)
	}
}

func TestCreateClaim_Validation(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		input    ClaimCreateInput
		wantCode string
	}{
		{
			name:     "missing description",
			input:    ClaimCreateInput{Description: "  ", ProjectID: "p1"},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "unknown project",
			input:    ClaimCreateInput{Description: "x", ProjectID: "nope"},
			wantCode: "NOT_FOUND",
		},
		{
			name:     "invalid priority",
			input:    ClaimCreateInput{Description: "x", ProjectID: "p1", Priority: "WHENEVER"},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "unknown subarea",
			input:    ClaimCreateInput{Description: "x", ProjectID: "p1", SubareaID: strptr("ghost")},
			wantCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.CreateClaim(ctx, "cust1", tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := domainCode(t, err); code != tt.wantCode {
				t.Errorf("code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestCreateClaim_SnapshotResolved(t *testing.T) {
	fx := newClaimServiceFixture()

	view, err := fx.service.CreateClaim(context.Background(), "cust1", ClaimCreateInput{
		Description: "needs hardware team",
		ProjectID:   "p1",
		SubareaID:   strptr("sa1"),
	})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}
	if view.Snapshot == nil {
		t.Fatal("snapshot missing")
	}
	if view.Snapshot.SubareaName != "Hardware" || view.Snapshot.AreaName != "Support" {
		t.Errorf("snapshot = %+v, want Hardware/Support", view.Snapshot)
	}
}

func TestTransitionClaim(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, err := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{
		Description: "dashboard unreachable",
		ProjectID:   "p1",
		ClaimType:   domain.ClaimTypeTechnical,
		SubareaID:   strptr("sa1"),
	})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	inProgress := domain.ClaimStatusInProgress
	updated, err := fx.service.TransitionClaim(ctx, "agent1", view.ID, ClaimTransitionInput{
		Status:     &inProgress,
		ActionNote: "assigned to support",
	})
	if err != nil {
		t.Fatalf("TransitionClaim: %v", err)
	}

	if updated.Status != domain.ClaimStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", updated.Status)
	}
	// Classification and snapshot carry forward when not supplied.
	if updated.ClaimType != domain.ClaimTypeTechnical {
		t.Errorf("claim type = %s, want carried TECHNICAL", updated.ClaimType)
	}
	if updated.Snapshot == nil || updated.Snapshot.SubareaID != "sa1" {
		t.Errorf("snapshot = %+v, want carried sa1", updated.Snapshot)
	}

	trail, _ := fx.store.ListByClaim(ctx, view.ID)
	if len(trail) != 2 {
		t.Fatalf("trail length = %d, want 2", len(trail))
	}
	if trail[0].EndDate == nil {
		t.Error("first entry should be closed")
	}
	if !trail[1].Open() {
		t.Error("second entry should be open")
	}
	// Closing the old entry and opening the new one share one timestamp, so
	// the trail has no gap.
	if !trail[0].EndDate.Equal(trail[1].StartDate) {
		t.Errorf("gap in trail: closed at %v, reopened at %v", trail[0].EndDate, trail[1].StartDate)
	}
	if trail[1].Action != "assigned to support" {
		t.Errorf("action = %q", trail[1].Action)
	}
	// Each entry records who wrote it. The creator stays on the first
	// entry; the new one carries the transitioning user, not the creator.
	if trail[0].ActorID != "cust1" {
		t.Errorf("first entry actor = %q, want cust1", trail[0].ActorID)
	}
	if trail[1].ActorID != "agent1" {
		t.Errorf("new entry actor = %q, want agent1", trail[1].ActorID)
	}
}

func TestTransitionClaim_ResolvedIsTerminal(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, _ := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{
		Description: "one and done", ProjectID: "p1",
	})

	resolved := domain.ClaimStatusResolved
	resolution := "replaced the cable"
	if _, err := fx.service.TransitionClaim(ctx, "agent1", view.ID, ClaimTransitionInput{
		Status:          &resolved,
		FinalResolution: &resolution,
	}); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	inProgress := domain.ClaimStatusInProgress
	_, err := fx.service.TransitionClaim(ctx, "agent1", view.ID, ClaimTransitionInput{Status: &inProgress})
	if err == nil {
		t.Fatal("expected conflict on transition after RESOLVED")
	}
	if !apperrors.IsConflict(err) {
		t.Errorf("error = %v, want conflict", err)
	}

	// The failed transition must leave the ledger untouched.
	trail, _ := fx.store.ListByClaim(ctx, view.ID)
	if len(trail) != 2 {
		t.Errorf("trail length = %d, want 2", len(trail))
	}
	// A resolved claim keeps no open entry; the RESOLVED entry closes at
	// the moment it is written.
	for i := range trail {
		if trail[i].Open() {
			t.Errorf("entry %d still open after resolve", i)
		}
	}

	current, err := fx.service.GetClaim(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetClaim: %v", err)
	}
	if current.FinalResolution == nil || *current.FinalResolution != resolution {
		t.Errorf("final resolution = %v, want %q", current.FinalResolution, resolution)
	}
}

func TestCloseOpenEntry_Idempotent(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, err := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{
		Description: "lingering open entry", ProjectID: "p1",
	})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	first := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	if err := fx.store.CloseOpen(ctx, view.ID, first); err != nil {
		t.Fatalf("CloseOpen: %v", err)
	}
	// The second call finds no open entry and must change nothing.
	second := first.Add(48 * time.Hour)
	if err := fx.store.CloseOpen(ctx, view.ID, second); err != nil {
		t.Fatalf("repeated CloseOpen: %v", err)
	}

	trail, _ := fx.store.ListByClaim(ctx, view.ID)
	if len(trail) != 1 {
		t.Fatalf("trail length = %d, want 1", len(trail))
	}
	if trail[0].EndDate == nil || !trail[0].EndDate.Equal(first) {
		t.Errorf("end date = %v, want %v from the first close", trail[0].EndDate, first)
	}
}

func TestTransitionClaim_ProjectReassignment(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, _ := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{
		Description: "moved mid-flight", ProjectID: "p1",
	})

	t.Run("malformed id rejected", func(t *testing.T) {
		_, err := fx.service.TransitionClaim(ctx, "agent1", view.ID, ClaimTransitionInput{
			ProjectID: strptr("not-a-uuid"),
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if code := domainCode(t, err); code != "BAD_REQUEST" {
			t.Errorf("code = %s, want BAD_REQUEST", code)
		}
	})

	t.Run("unknown project rejected", func(t *testing.T) {
		_, err := fx.service.TransitionClaim(ctx, "agent1", view.ID, ClaimTransitionInput{
			ProjectID: strptr("0b37d5cc-57e7-4f2f-8c26-2bb6d5b0c7b1"),
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if !apperrors.IsNotFound(err) {
			t.Errorf("error = %v, want not found", err)
		}
	})
}

func TestTransitionClaim_UnknownClaim(t *testing.T) {
	fx := newClaimServiceFixture()
	inProgress := domain.ClaimStatusInProgress
	_, err := fx.service.TransitionClaim(context.Background(), "agent1", "missing", ClaimTransitionInput{Status: &inProgress})
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestGetClaim_ViewMatchesLatestEntry(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, _ := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{
		Description: "escalating", ProjectID: "p1",
	})
	urgent := domain.ClaimPriorityUrgent
	if _, err := fx.service.TransitionClaim(ctx, "agent1", view.ID, ClaimTransitionInput{Priority: &urgent}); err != nil {
		t.Fatalf("TransitionClaim: %v", err)
	}

	current, err := fx.service.GetClaim(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetClaim: %v", err)
	}
	if current.Priority != domain.ClaimPriorityUrgent {
		t.Errorf("priority = %s, want URGENT from latest entry", current.Priority)
	}
	if current.Status != domain.ClaimStatusPending {
		t.Errorf("status = %s, want carried PENDING", current.Status)
	}
}

func TestListClaims_CustomerScopedToOwn(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{Description: "mine", ProjectID: "p1"})   //nolint:errcheck
	fx.service.CreateClaim(ctx, "cust2", ClaimCreateInput{Description: "theirs", ProjectID: "p2"}) //nolint:errcheck

	customer := &domain.User{ID: "cust1", Role: domain.RoleCustomer}
	views, err := fx.service.ListClaims(ctx, customer, ClaimListFilter{})
	if err != nil {
		t.Fatalf("ListClaims: %v", err)
	}
	if len(views) != 1 || views[0].CreatorID != "cust1" {
		t.Fatalf("views = %+v, want only cust1's claim", views)
	}

	admin := &domain.User{ID: "adm", Role: domain.RoleAdmin}
	views, err = fx.service.ListClaims(ctx, admin, ClaimListFilter{})
	if err != nil {
		t.Fatalf("ListClaims: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("admin sees %d claims, want 2", len(views))
	}
}

func TestMessages(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, _ := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{Description: "chatty", ProjectID: "p1"})

	if _, err := fx.service.PostMessage(ctx, "agent1", view.ID, "internal note", domain.MessageVisibilityInternal); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if _, err := fx.service.PostMessage(ctx, "cust1", view.ID, "any update?", domain.MessageVisibilityPublic); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	customer := &domain.User{ID: "cust1", Role: domain.RoleCustomer}
	visible, err := fx.service.ListMessages(ctx, customer, view.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(visible) != 1 || visible[0].Content != "any update?" {
		t.Fatalf("customer sees %+v, want only the public message", visible)
	}

	agent := &domain.User{ID: "agent1", Role: domain.RoleUser}
	all, err := fx.service.ListMessages(ctx, agent, view.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("agent sees %d messages, want 2", len(all))
	}

	if _, err := fx.service.PostMessage(ctx, "cust1", "missing", "hello", domain.MessageVisibilityPublic); !apperrors.IsNotFound(err) {
		t.Errorf("posting to unknown claim: %v, want not found", err)
	}
}

func TestAttachFiles(t *testing.T) {
	fx := newClaimServiceFixture()
	ctx := context.Background()

	view, _ := fx.service.CreateClaim(ctx, "cust1", ClaimCreateInput{Description: "with evidence", ProjectID: "p1"})

	attached, err := fx.service.AttachFiles(ctx, view.ID, []AttachmentInput{
		{Name: "photo.jpg", URL: "https://files.example/photo.jpg"},
		{Name: "report.PDF", URL: "https://files.example/report.pdf"},
	})
	if err != nil {
		t.Fatalf("AttachFiles: %v", err)
	}
	if len(attached) != 2 {
		t.Fatalf("attached %d, want 2", len(attached))
	}
	if attached[0].Kind != domain.AttachmentKindImage {
		t.Errorf("kind = %s, want IMAGE", attached[0].Kind)
	}
	if attached[1].Kind != domain.AttachmentKindPDF {
		t.Errorf("kind = %s, want PDF", attached[1].Kind)
	}

	_, err = fx.service.AttachFiles(ctx, view.ID, []AttachmentInput{
		{Name: "a.jpg"}, {Name: "b.jpg"}, {Name: "c.jpg"},
	})
	if err == nil {
		t.Fatal("expected error for batch over limit")
	}
	if code := domainCode(t, err); code != "BAD_REQUEST" {
		t.Errorf("code = %s, want BAD_REQUEST", code)
	}

	if _, err := fx.service.AttachFiles(ctx, view.ID, nil); err == nil {
		t.Error("expected error for empty batch")
	}
}

func strptr(s string) *string { return &s }
