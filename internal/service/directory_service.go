package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/repository"
	apperrors "github.com/spec-kit/claims-service/pkg/util/errorutil"
)

// DirectoryService manages the reference data claims hang off: projects and
// the area/subarea hierarchy.
type DirectoryService struct {
	projects repository.ProjectRepository
	areas    repository.AreaRepository
	subareas repository.SubareaRepository
}

// ProjectInput is the creation/update payload for projects.
type ProjectInput struct {
	Title            string
	Description      *string
	OwnerID          string
	ProjectType      domain.ProjectType
	RegistrationDate *time.Time
}

// NewDirectoryService builds the service.
func NewDirectoryService(projects repository.ProjectRepository, areas repository.AreaRepository, subareas repository.SubareaRepository) *DirectoryService {
	return &DirectoryService{projects: projects, areas: areas, subareas: subareas}
}

// CreateProject registers a project for a customer.
func (s *DirectoryService) CreateProject(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	if !input.ProjectType.IsValid() {
		return nil, apperrors.NewValidationError("invalid project type", map[string]any{"project_type": string(input.ProjectType)})
	}
	registered := time.Now()
	if input.RegistrationDate != nil {
		registered = *input.RegistrationDate
	}
	project := &domain.Project{
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		OwnerID:          input.OwnerID,
		ProjectType:      input.ProjectType,
		IsActive:         true,
		RegistrationDate: registered,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject fetches a single project.
func (s *DirectoryService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return nil, err
	}
	return project, nil
}

// ListProjects returns projects scoped by the caller's role. Customers only
// see projects they own.
func (s *DirectoryService) ListProjects(ctx context.Context, caller *domain.User) ([]domain.Project, error) {
	if caller != nil && caller.Role == domain.RoleCustomer {
		return s.projects.ListByOwner(ctx, caller.ID)
	}
	return s.projects.ListActive(ctx)
}

// DeactivateProject soft-deletes a project without touching its claims.
func (s *DirectoryService) DeactivateProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	project.IsActive = false
	project.DeletedAt = &now
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// CreateArea registers a top-level organizational unit.
func (s *DirectoryService) CreateArea(ctx context.Context, name string, description *string) (*domain.Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("area name is required", nil)
	}
	area := &domain.Area{Name: name, Description: description}
	if err := s.areas.Create(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// ListAreas returns all areas.
func (s *DirectoryService) ListAreas(ctx context.Context) ([]domain.Area, error) {
	return s.areas.List(ctx)
}

// CreateSubarea registers a subarea under an existing area.
func (s *DirectoryService) CreateSubarea(ctx context.Context, areaID, name string, description *string) (*domain.Subarea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("subarea name is required", nil)
	}
	area, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("area", map[string]any{"area_id": areaID})
		}
		return nil, err
	}
	subarea := &domain.Subarea{
		Name:        name,
		Description: description,
		AreaID:      area.ID,
		AreaName:    area.Name,
	}
	if err := s.subareas.Create(ctx, subarea); err != nil {
		return nil, err
	}
	return subarea, nil
}

// ListSubareas returns subareas within an area.
func (s *DirectoryService) ListSubareas(ctx context.Context, areaID string) ([]domain.Subarea, error) {
	return s.subareas.ListByArea(ctx, areaID)
}
