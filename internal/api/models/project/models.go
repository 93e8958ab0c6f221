package project

import (
	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/common"
	domainProject "github.com/tasklink/tasklink/internal/domain/project"
)

// NewProject is the API model for creating a Project
type NewProject struct {
	Name        string  `json:"name" binding:"required" example:"Apollo"`
	Description *string `json:"description,omitempty" example:"Moonshot things"`
}

func (p *NewProject) ToDomainNewProject(ownerID uuid.UUID) domainProject.NewProject {
	return domainProject.NewProject{
		Name:        domainProject.Name(p.Name),
		Description: (*domainProject.Description)(p.Description),
		OwnerID:     ownerID,
	}
}

// ProjectUpdate is the API model for updating a Project. IfMatch is a body
// fallback for callers that cannot set the If-Match header.
type ProjectUpdate struct {
	Name        string  `json:"name" binding:"required" example:"Apollo"`
	Description *string `json:"description,omitempty" example:"Moonshot things"`
	IfMatch     *string `json:"if_match,omitempty" example:"W/\"AAAAAAAAAAE=\""`
}

func (p *ProjectUpdate) ToDomainUpdate() domainProject.Update {
	return domainProject.Update{
		Name:        domainProject.Name(p.Name),
		Description: (*domainProject.Description)(p.Description),
	}
}

// Project is the API model of a persisted Project
type Project struct {
	ID          uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	Name        string          `json:"name" example:"Apollo"`
	Description *string         `json:"description,omitempty"`
	OwnerID     uuid.UUID       `json:"owner_id" swaggertype:"string" format:"uuid"`
	Metadata    common.Metadata `json:"metadata"`
}

func FromDomainProject(p *domainProject.Project) Project {
	return Project{
		ID:          p.ID,
		Name:        string(p.Name),
		Description: (*string)(p.Description),
		OwnerID:     p.OwnerID,
		Metadata:    common.FromDomainMetadata(p.Metadata),
	}
}
