package project

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/api/models/project"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/etag"
	domainProject "github.com/tasklink/tasklink/internal/domain/project"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

// Controller is an interface that defines the methods that are available to
// the routing layer. It is framework-agnostic
type Controller interface {

	// Create returns a Project based on the passed-in NewProject
	//
	// Never pass a nil here; it's a pointer because the struct isn't small
	Create(ctx context.Context, principal authz.Principal, newProject *project.NewProject) (*project.Project, *common.ApiError)

	// Get returns a Project by its id
	Get(ctx context.Context, id uuid.UUID) (*project.Project, *common.ApiError)

	// List returns a page of Projects matching the given params
	List(ctx context.Context, params common.ListParams) (*common.Page[project.Project], *common.ApiError)

	// Update applies an update to a Project, guarded by the concurrency token
	// in ifMatch
	Update(ctx context.Context, principal authz.Principal, id uuid.UUID, ifMatch string, update *project.ProjectUpdate) (*project.Project, *common.ApiError)

	// Delete removes a Project, unguarded by any concurrency token
	Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) *common.ApiError
}

func New(projectsService domainProject.Service) Controller {
	return &impl{projectsService: projectsService}
}

type impl struct {
	projectsService domainProject.Service
}

func (c *impl) Create(ctx context.Context, principal authz.Principal, newProject *project.NewProject) (*project.Project, *common.ApiError) {
	domainNewProject := newProject.ToDomainNewProject(principal.ID)
	result, err := c.projectsService.Create(ctx, principal, &domainNewProject)
	if err != nil {
		return nil, handleErr(err)
	} else {
		p := project.FromDomainProject(result)
		return &p, nil
	}
}

func (c *impl) Get(ctx context.Context, id uuid.UUID) (*project.Project, *common.ApiError) {
	result, err := c.projectsService.Get(ctx, id)
	if err != nil {
		return nil, handleErr(err)
	} else {
		p := project.FromDomainProject(result)
		return &p, nil
	}
}

func (c *impl) List(ctx context.Context, params common.ListParams) (*common.Page[project.Project], *common.ApiError) {
	result, err := c.projectsService.List(ctx, params.ToDomainQuery())
	if err != nil {
		return nil, handleErr(err)
	} else {
		page := common.PageOf(result, project.FromDomainProject)
		return &page, nil
	}
}

func (c *impl) Update(ctx context.Context, principal authz.Principal, id uuid.UUID, ifMatch string, update *project.ProjectUpdate) (*project.Project, *common.ApiError) {
	expected, err := etag.Decode(ifMatch)
	if err != nil {
		return nil, handleErr(err)
	}
	domainUpdate := update.ToDomainUpdate()
	result, err := c.projectsService.Update(ctx, principal, id, expected, &domainUpdate)
	if err != nil {
		return nil, handleErr(err)
	} else {
		p := project.FromDomainProject(result)
		return &p, nil
	}
}

func (c *impl) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) *common.ApiError {
	if err := c.projectsService.Delete(ctx, principal, id); err != nil {
		return handleErr(err)
	}
	return nil
}

func handleErr(err error) *common.ApiError {
	switch v := err.(type) {
	case storage.NotFound:
		return notFound(v)
	case storage.VersionConflict:
		return versionConflict(v)
	case domainProject.InvalidField:
		return invalidField(v)
	case etag.Missing:
		return tokenMissing(v)
	case etag.Malformed:
		return tokenMalformed(v)
	case authz.Forbidden:
		return forbidden(v)
	case storage.InvalidPersistedData:
		return invalidPersistedData(v)
	default:
		return unhandledErr(v)
	}
}

func notFound(notFound storage.NotFound) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusNotFound,
		Body: common.Body{
			Message: notFound.Error(),
		},
	}
}

func versionConflict(versionConflict storage.VersionConflict) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusPreconditionFailed,
		Body: common.Body{
			Message: versionConflict.Error(),
		},
	}
}

func invalidField(invalidField domainProject.InvalidField) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: invalidField.Error(),
		},
	}
}

func tokenMissing(missing etag.Missing) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusPreconditionRequired,
		Body: common.Body{
			Message: missing.Error(),
		},
	}
}

func tokenMalformed(malformed etag.Malformed) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: malformed.Error(),
		},
	}
}

func forbidden(forbidden authz.Forbidden) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusForbidden,
		Body: common.Body{
			Message: forbidden.Error(),
		},
	}
}

func invalidPersistedData(err storage.InvalidPersistedData) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func unhandledErr(e error) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: e.Error(),
		},
	}
}
