package dto

import (
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ProjectCreateRequest payload for registering a project.
type ProjectCreateRequest struct {
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	OwnerID          string     `json:"owner_id"`
	ProjectType      string     `json:"project_type"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
}

// ProjectResponse is the public shape of a project.
type ProjectResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	OwnerID          string     `json:"owner_id"`
	ProjectType      string     `json:"project_type"`
	IsActive         bool       `json:"is_active"`
	RegistrationDate time.Time  `json:"registration_date"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// AreaCreateRequest payload for a new area.
type AreaCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SubareaCreateRequest payload for a new subarea.
type SubareaCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// AreaResponse is the public shape of an area.
type AreaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubareaResponse is the public shape of a subarea.
type SubareaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	AreaID      string    `json:"area_id"`
	AreaName    string    `json:"area_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProjectResponse maps a project.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:               project.ID,
		Title:            project.Title,
		Description:      project.Description,
		OwnerID:          project.OwnerID,
		ProjectType:      string(project.ProjectType),
		IsActive:         project.IsActive,
		RegistrationDate: project.RegistrationDate,
		CreatedAt:        project.CreatedAt,
		DeletedAt:        project.DeletedAt,
	}
}

// NewProjectResponses maps a project slice.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	result := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, NewProjectResponse(&projects[i]))
	}
	return result
}

// NewAreaResponse maps an area.
func NewAreaResponse(area *domain.Area) AreaResponse {
	return AreaResponse{
		ID:          area.ID,
		Name:        area.Name,
		Description: area.Description,
		CreatedAt:   area.CreatedAt,
	}
}

// NewAreaResponses maps an area slice.
func NewAreaResponses(areas []domain.Area) []AreaResponse {
	result := make([]AreaResponse, 0, len(areas))
	for i := range areas {
		result = append(result, NewAreaResponse(&areas[i]))
	}
	return result
}

// NewSubareaResponse maps a subarea.
func NewSubareaResponse(subarea *domain.Subarea) SubareaResponse {
	return SubareaResponse{
		ID:          subarea.ID,
		Name:        subarea.Name,
		Description: subarea.Description,
		AreaID:      subarea.AreaID,
		AreaName:    subarea.AreaName,
		CreatedAt:   subarea.CreatedAt,
	}
}

// NewSubareaResponses maps a subarea slice.
func NewSubareaResponses(subareas []domain.Subarea) []SubareaResponse {
	result := make([]SubareaResponse, 0, len(subareas))
	for i := range subareas {
		result = append(result, NewSubareaResponse(&subareas[i]))
	}
	return result
}
