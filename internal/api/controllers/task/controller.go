package task

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/api/models/task"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/etag"
	"github.com/tasklink/tasklink/internal/domain/storage"
	domainTask "github.com/tasklink/tasklink/internal/domain/task"
)

// Controller is an interface that defines the methods that are available to
// the routing layer. It is framework-agnostic
type Controller interface {

	// Create returns a Task based on the passed-in NewTask, scoped to the
	// given Project
	//
	// Never pass a nil here; it's a pointer because the struct isn't small
	Create(ctx context.Context, principal authz.Principal, projectID uuid.UUID, newTask *task.NewTask) (*task.Task, *common.ApiError)

	// Get returns a Task by its id within the given Project
	Get(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*task.Task, *common.ApiError)

	// List returns a page of the Project's Tasks matching the given params
	List(ctx context.Context, projectID uuid.UUID, params common.ListParams) (*common.Page[task.Task], *common.ApiError)

	// Update applies an update to a Task, guarded by the concurrency token in
	// ifMatch
	Update(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID, ifMatch string, update *task.TaskUpdate) (*task.Task, *common.ApiError)

	// Delete removes a Task, unguarded by any concurrency token
	Delete(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID) *common.ApiError
}

func New(tasksService domainTask.Service) Controller {
	return &impl{tasksService: tasksService}
}

type impl struct {
	tasksService domainTask.Service
}

func (c *impl) Create(ctx context.Context, principal authz.Principal, projectID uuid.UUID, newTask *task.NewTask) (*task.Task, *common.ApiError) {
	domainNewTask := newTask.ToDomainNewTask()
	result, err := c.tasksService.Create(ctx, principal, projectID, &domainNewTask)
	if err != nil {
		return nil, handleErr(err)
	} else {
		t := task.FromDomainTask(result)
		return &t, nil
	}
}

func (c *impl) Get(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*task.Task, *common.ApiError) {
	result, err := c.tasksService.Get(ctx, projectID, id)
	if err != nil {
		return nil, handleErr(err)
	} else {
		t := task.FromDomainTask(result)
		return &t, nil
	}
}

func (c *impl) List(ctx context.Context, projectID uuid.UUID, params common.ListParams) (*common.Page[task.Task], *common.ApiError) {
	result, err := c.tasksService.List(ctx, projectID, params.ToDomainQuery())
	if err != nil {
		return nil, handleErr(err)
	} else {
		page := common.PageOf(result, task.FromDomainTask)
		return &page, nil
	}
}

func (c *impl) Update(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID, ifMatch string, update *task.TaskUpdate) (*task.Task, *common.ApiError) {
	expected, err := etag.Decode(ifMatch)
	if err != nil {
		return nil, handleErr(err)
	}
	domainUpdate := update.ToDomainUpdate()
	result, err := c.tasksService.Update(ctx, principal, projectID, id, expected, &domainUpdate)
	if err != nil {
		return nil, handleErr(err)
	} else {
		t := task.FromDomainTask(result)
		return &t, nil
	}
}

func (c *impl) Delete(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID) *common.ApiError {
	if err := c.tasksService.Delete(ctx, principal, projectID, id); err != nil {
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
	case domainTask.InvalidField:
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

func invalidField(invalidField domainTask.InvalidField) *common.ApiError {
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
