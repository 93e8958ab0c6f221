package comment

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/comment"
	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/domain/authz"
	domainComment "github.com/tasklink/tasklink/internal/domain/comment"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

// Controller is an interface that defines the methods that are available to
// the routing layer. It is framework-agnostic
type Controller interface {

	// Create returns a Comment based on the passed-in NewComment, authored by
	// the principal on the given Task
	Create(ctx context.Context, principal authz.Principal, taskID uuid.UUID, newComment *comment.NewComment) (*comment.Comment, *common.ApiError)

	// List returns a page of the Task's Comments, newest first
	List(ctx context.Context, taskID uuid.UUID, params common.ListParams) (*common.Page[comment.Comment], *common.ApiError)

	// Delete removes a Comment; only its author or an admin may do so
	Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) *common.ApiError
}

func New(commentsService domainComment.Service) Controller {
	return &impl{commentsService: commentsService}
}

type impl struct {
	commentsService domainComment.Service
}

func (c *impl) Create(ctx context.Context, principal authz.Principal, taskID uuid.UUID, newComment *comment.NewComment) (*comment.Comment, *common.ApiError) {
	domainNewComment := newComment.ToDomainNewComment()
	result, err := c.commentsService.Create(ctx, principal, taskID, &domainNewComment)
	if err != nil {
		return nil, handleErr(err)
	} else {
		created := comment.FromDomainComment(result)
		return &created, nil
	}
}

func (c *impl) List(ctx context.Context, taskID uuid.UUID, params common.ListParams) (*common.Page[comment.Comment], *common.ApiError) {
	result, err := c.commentsService.List(ctx, taskID, params.ToDomainQuery())
	if err != nil {
		return nil, handleErr(err)
	} else {
		page := common.PageOf(result, comment.FromDomainComment)
		return &page, nil
	}
}

func (c *impl) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) *common.ApiError {
	if err := c.commentsService.Delete(ctx, principal, id); err != nil {
		return handleErr(err)
	}
	return nil
}

func handleErr(err error) *common.ApiError {
	switch v := err.(type) {
	case storage.NotFound:
		return notFound(v)
	case domainComment.InvalidField:
		return invalidField(v)
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

func invalidField(invalidField domainComment.InvalidField) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: invalidField.Error(),
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
