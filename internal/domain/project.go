package domain

import "time"

// ProjectType enumerates the business category of a project.
type ProjectType string

const (
	ProjectTypeCommercial   ProjectType = "COMMERCIAL"
	ProjectTypeMaintenance  ProjectType = "MAINTENANCE"
	ProjectTypeProduction   ProjectType = "PRODUCTION"
	ProjectTypeServices     ProjectType = "SERVICES"
	ProjectTypeConstruction ProjectType = "CONSTRUCTION"
	ProjectTypeTechnology   ProjectType = "TECHNOLOGY"
)

// Project is the owning context for claims. The owner is the customer user
// the project belongs to.
type Project struct {
	ID               string
	Title            string
	Description      *string
	OwnerID          string
	ProjectType      ProjectType
	IsActive         bool
	RegistrationDate time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// IsValid reports whether the project type is a known value.
func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeCommercial, ProjectTypeMaintenance, ProjectTypeProduction,
		ProjectTypeServices, ProjectTypeConstruction, ProjectTypeTechnology:
		return true
	}
	return false
}
